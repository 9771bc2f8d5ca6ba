package history

import (
	"fmt"
	"sync"
	"testing"
)

func TestAddAndRecent(t *testing.T) {
	s := NewStore()
	s.Add("nonlinear", "x^2-4", "2, -2")
	s.Add("nonlinear", "x+1", "-1")
	s.Add("linear", "x+y=3; x-y=1", "(2, 1)")

	recs := s.Recent("nonlinear", 0)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	// Most recent first.
	if recs[0].Input != "x+1" || recs[1].Input != "x^2-4" {
		t.Errorf("wrong order: %v", recs)
	}
	if recs[0].ID == "" || recs[0].ID == recs[1].ID {
		t.Errorf("records need distinct IDs: %q vs %q", recs[0].ID, recs[1].ID)
	}

	if got := s.Recent("nonlinear", 1); len(got) != 1 || got[0].Input != "x+1" {
		t.Errorf("limit 1: %v", got)
	}
	if got := s.Recent("matrix", 0); len(got) != 0 {
		t.Errorf("empty category: %v", got)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Add("matrix", "det 1 2; 3 4", "-2")
	s.Add("matrix", "rank 1 0; 0 1", "2")

	if n := s.Clear("matrix"); n != 2 {
		t.Errorf("cleared %d, want 2", n)
	}
	if got := s.Recent("matrix", 0); len(got) != 0 {
		t.Errorf("records remain after clear: %v", got)
	}
	if n := s.Clear("matrix"); n != 0 {
		t.Errorf("second clear dropped %d", n)
	}
}

func TestConcurrentAdd(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add("nonlinear", fmt.Sprintf("x-%d", i), fmt.Sprintf("%d", i))
		}(i)
	}
	wg.Wait()
	if got := s.Recent("nonlinear", 0); len(got) != 20 {
		t.Errorf("got %d records, want 20", len(got))
	}
}
