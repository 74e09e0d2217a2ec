package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"doccompare/types"
)

func result(id string, at time.Time) *types.ComparisonResult {
	return &types.ComparisonResult{ID: id, CreatedAt: at}
}

func TestLatestOnEmptyStore(t *testing.T) {
	s := NewStore()
	if _, err := s.Latest(); !errors.Is(err, ErrNoComparison) {
		t.Fatalf("Latest() error = %v; want ErrNoComparison", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatalf("Get() on empty store reported a result")
	}
}

func TestSetOverwritesWholesale(t *testing.T) {
	s := NewStore()
	base := time.Now()

	if !s.Set(result("first", base)) {
		t.Fatalf("first Set rejected")
	}
	if !s.Set(result("second", base.Add(time.Second))) {
		t.Fatalf("newer Set rejected")
	}
	got, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if got.ID != "second" {
		t.Fatalf("Latest().ID = %q; want second", got.ID)
	}
}

func TestSetRejectsOlderResult(t *testing.T) {
	s := NewStore()
	base := time.Now()

	s.Set(result("newer", base.Add(time.Second)))
	if s.Set(result("older", base)) {
		t.Fatalf("older result was accepted")
	}
	got, _ := s.Latest()
	if got.ID != "newer" {
		t.Fatalf("Latest().ID = %q; want newer", got.ID)
	}

	// equal timestamps overwrite
	if !s.Set(result("tie", base.Add(time.Second))) {
		t.Fatalf("result with equal created_at was rejected")
	}
}

func TestSetNil(t *testing.T) {
	s := NewStore()
	if s.Set(nil) {
		t.Fatalf("Set(nil) accepted")
	}
}

func TestConcurrentSetKeepsNewest(t *testing.T) {
	s := NewStore()
	base := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(result("r", base.Add(time.Duration(i)*time.Millisecond)))
			_, _ = s.Latest()
		}(i)
	}
	wg.Wait()

	got, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if want := base.Add(49 * time.Millisecond); !got.CreatedAt.Equal(want) {
		t.Fatalf("kept %v; want newest %v", got.CreatedAt, want)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Set(result("x", time.Now()))
	s.Clear()
	if _, err := s.Latest(); !errors.Is(err, ErrNoComparison) {
		t.Fatalf("Latest() after Clear = %v; want ErrNoComparison", err)
	}
}
