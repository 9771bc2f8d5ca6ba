// Package history keeps an in-memory record of solved problems, grouped by
// operation category.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one solved problem.
type Record struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Input    string    `json:"input"`
	Output   string    `json:"output"`
	At       time.Time `json:"at"`
}

// Store is an append-only record store keyed by category, most recent first.
// Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	records map[string][]Record
}

func NewStore() *Store {
	return &Store{records: make(map[string][]Record)}
}

// Add records a solved problem and returns its generated ID.
func (s *Store) Add(category, input, output string) string {
	rec := Record{
		ID:       uuid.NewString(),
		Category: category,
		Input:    input,
		Output:   output,
		At:       time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[category] = append([]Record{rec}, s.records[category]...)
	return rec.ID
}

// Recent returns up to limit records for a category, most recent first. A
// non-positive limit returns everything.
func (s *Store) Recent(category string, limit int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.records[category]
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Categories lists the categories that currently hold records.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.records))
	for cat, recs := range s.records {
		if len(recs) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Clear removes every record in a category and reports how many were dropped.
func (s *Store) Clear(category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.records[category])
	delete(s.records, category)
	return n
}
