package infrastructure

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// ========================================
// Tests unitaires
// ========================================

func TestWorkerPool_ExecutesAllTasks(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	var executed int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		err := wp.Submit(func() error {
			defer wg.Done()
			atomic.AddInt64(&executed, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if executed != 100 {
		t.Errorf("Expected 100 executed tasks, got %d", executed)
	}
}

func TestWorkerPool_CollectsErrors(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	taskErr := errors.New("batch conversion failed")
	var wg sync.WaitGroup
	wg.Add(1)

	if err := wp.Submit(func() error {
		defer wg.Done()
		return taskErr
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	wg.Wait()

	select {
	case err := <-wp.Errors():
		if !errors.Is(err, taskErr) {
			t.Errorf("Expected task error, got %v", err)
		}
	default:
		t.Error("Expected error on the errors channel")
	}
}

func TestWorkerPool_SubmitAfterStop(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	wp.Stop()

	if err := wp.Submit(func() error { return nil }); err == nil {
		t.Error("Expected error when submitting to a stopped pool")
	}
}

// ========================================
// Benchmarks
// ========================================

// BenchmarkWorkerPool_4Workers teste avec 4 workers (défaut dans le projet)
func BenchmarkWorkerPool_4Workers_FastTasks(b *testing.B) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = wp.Submit(func() error {
			_ = 1 + 1
			return nil
		})
	}
}

// BenchmarkWorkerPool_BatchConversion simule la conversion de batches d'export
func BenchmarkWorkerPool_BatchConversion(b *testing.B) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		for batch := 0; batch < 8; batch++ {
			wg.Add(1)
			_ = wp.Submit(func() error {
				defer wg.Done()
				sum := 0.0
				for j := 0; j < 1000; j++ {
					sum += float64(j) * 1.2
				}
				_ = sum
				return nil
			})
		}
		wg.Wait()
	}
}
