package infrastructure

import (
	"fmt"
	"testing"
	"time"
)

// ========================================
// Tests unitaires
// ========================================

func TestInMemoryCache_SetGet(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set("report:365", "value", 5*time.Minute)

	got, found := cache.Get("report:365")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if got.(string) != "value" {
		t.Errorf("Expected value, got %v", got)
	}

	if _, found := cache.Get("absent"); found {
		t.Error("Expected cache miss for absent key")
	}
}

func TestInMemoryCache_Expiration(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set("report:30", "value", -1*time.Second) // Déjà expiré

	if _, found := cache.Get("report:30"); found {
		t.Error("Expected expired entry to be a miss")
	}
}

func TestShardedCache_DeleteAndClear(t *testing.T) {
	cache := NewShardedCache(16)
	for i := 0; i < 100; i++ {
		cache.Set(fmt.Sprintf("key%d", i), i, 5*time.Minute)
	}

	cache.Delete("key42")
	if cache.Has("key42") {
		t.Error("Expected key42 to be deleted")
	}
	if !cache.Has("key41") {
		t.Error("Expected key41 to survive Delete of another key")
	}

	cache.Clear()
	for i := 0; i < 100; i++ {
		if cache.Has(fmt.Sprintf("key%d", i)) {
			t.Fatalf("Expected empty cache after Clear, key%d still present", i)
		}
	}
}

func TestShardedCache_DistributesKeys(t *testing.T) {
	cache := NewShardedCache(16)
	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("report:%d", i), i, 5*time.Minute)
	}

	for i := 0; i < 1000; i++ {
		got, found := cache.Get(fmt.Sprintf("report:%d", i))
		if !found || got.(int) != i {
			t.Fatalf("Expected report:%d = %d, got %v (found=%v)", i, i, got, found)
		}
	}
}

func TestCacheKeyBuilder(t *testing.T) {
	key := NewCacheKeyBuilder().
		Add("report").
		AddInt(365).
		AddInt(2).
		AddFloat(250).
		AddFloat(180).
		Build()

	expected := "report:365:2:250:180"
	if key != expected {
		t.Errorf("Expected %q, got %q", expected, key)
	}
}

// ========================================
// Benchmarks
// ========================================

func BenchmarkShardedCache_Get_NoContention(b *testing.B) {
	cache := NewShardedCache(16)
	cache.Set("report:365", "value", 5*time.Minute)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = cache.Get("report:365")
	}
}

func BenchmarkShardedCache_Get_HighContention(b *testing.B) {
	cache := NewShardedCache(16)
	cache.Set("shared_key", "shared_value", 5*time.Minute)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = cache.Get("shared_key")
		}
	})
}

// BenchmarkComparison_InMemory_vs_Sharded_Concurrent compare en concurrence
func BenchmarkComparison_InMemory_vs_Sharded_Concurrent(b *testing.B) {
	b.Run("InMemoryCache", func(b *testing.B) {
		cache := NewInMemoryCache()
		for i := 0; i < 1000; i++ {
			cache.Set(fmt.Sprintf("key%d", i), "value", 5*time.Minute)
		}

		b.ResetTimer()
		b.ReportAllocs()

		b.RunParallel(func(pb *testing.PB) {
			localCounter := 0
			for pb.Next() {
				localCounter++
				_, _ = cache.Get(fmt.Sprintf("key%d", localCounter%1000))
			}
		})
	})

	b.Run("ShardedCache_16", func(b *testing.B) {
		cache := NewShardedCache(16)
		for i := 0; i < 1000; i++ {
			cache.Set(fmt.Sprintf("key%d", i), "value", 5*time.Minute)
		}

		b.ResetTimer()
		b.ReportAllocs()

		b.RunParallel(func(pb *testing.PB) {
			localCounter := 0
			for pb.Next() {
				localCounter++
				_, _ = cache.Get(fmt.Sprintf("key%d", localCounter%1000))
			}
		})
	})
}

// BenchmarkCacheKeyBuilder simule la construction de clé d'un rapport
func BenchmarkCacheKeyBuilder(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = NewCacheKeyBuilder().
			Add("report").
			AddInt(365).
			AddInt(2).
			AddFloat(250).
			AddFloat(180).
			AddFloat(800).
			Build()
	}
}
