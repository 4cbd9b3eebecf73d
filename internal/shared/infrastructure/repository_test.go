package infrastructure

import (
	"context"
	"testing"
)

// TestBaseRepository_WithContext vérifie que WithContext retourne une copie
// liée au contexte donné sans toucher le repository d'origine
func TestBaseRepository_WithContext(t *testing.T) {
	base := NewBaseRepository(nil)

	type reqKey struct{}
	ctx := context.WithValue(context.Background(), reqKey{}, "req-42")

	bound := base.WithContext(ctx)
	if bound.Context() != ctx {
		t.Error("Expected the bound copy to carry the given context")
	}
	if base.Context() == ctx {
		t.Error("WithContext must return a copy, not mutate the receiver")
	}
	if base.Context() != context.Background() {
		t.Error("Original repository must keep its background context")
	}
}
