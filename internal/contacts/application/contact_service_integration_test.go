package application

import (
	"context"
	"strings"
	"testing"

	"agrireport/internal/testhelpers"
)

// Tests d'intégration du pipeline de nettoyage sur données entrepôt réelles

// TestContactService_OutputContract vérifie le contrat de sortie sur la base:
// emails uniques, mobiles normalisés, aucun champ vide
func TestContactService_OutputContract(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	service := NewContactService(ctx.ClientQueryRepo)

	contacts, stats, err := service.CleanedContacts(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Input == 0 {
		t.Skip("clients_web table is empty, seed the database first")
	}
	if stats.Output != len(contacts) {
		t.Fatalf("Stats output %d does not match %d contacts", stats.Output, len(contacts))
	}

	seen := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		if _, dup := seen[c.Email]; dup {
			t.Fatalf("Duplicate email in output: %s", c.Email)
		}
		seen[c.Email] = struct{}{}

		if !strings.HasPrefix(c.Mobile, "+33") || len(c.Mobile) != 12 {
			t.Errorf("Malformed mobile in output: %q", c.Mobile)
		}
		for _, field := range c.Fields() {
			if strings.TrimSpace(field) == "" {
				t.Errorf("Empty field in output contact %s", c.Email)
			}
		}
	}
}

// BenchmarkContactService_CleanedContacts mesure le pipeline complet
func BenchmarkContactService_CleanedContacts(b *testing.B) {
	testhelpers.SkipIfNoDatabase(b)

	ctx := testhelpers.SetupTestContext(b)
	defer ctx.Cleanup()

	service := NewContactService(ctx.ClientQueryRepo)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		contacts, _, err := service.CleanedContacts(context.Background(), 1000)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportMetric(float64(len(contacts)), "contacts")
	}
}
