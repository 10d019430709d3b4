package store

import (
	"context"
	"sync"

	"github.com/birthdaysvc/birthdayd/pkg/hello"
)

// Memory is an in-process hello.Store. It backs the self-contained mode
// (no external store configured) and tests. Records do not survive a
// restart.
type Memory struct {
	mu      sync.RWMutex
	records map[string]hello.Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]hello.Record)}
}

// GetBirthday implements hello.Store.
func (s *Memory) GetBirthday(_ context.Context, username string) (*hello.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[username]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// UpsertBirthday implements hello.Store.
func (s *Memory) UpsertBirthday(_ context.Context, username string, dob hello.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[username] = hello.Record{DOB: dob}
	return nil
}
