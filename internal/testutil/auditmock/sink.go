package auditmock

import (
	"context"
	"sync"

	"bottlekeep-backend/internal/domain/audit"
)

var _ audit.Sink = (*Sink)(nil)

// Sink collects entries in memory for assertions.
type Sink struct {
	mu      sync.Mutex
	Entries []audit.Entry
	Err     error
}

func (s *Sink) Record(_ context.Context, e audit.Entry) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, e)
	return nil
}

func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Entries)
}
