package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/orderstatus/internal/worker"
)

// EventSourceStub serves queued events and reports an empty poll otherwise.
type EventSourceStub struct {
	mu        sync.Mutex
	Events    []*worker.Event
	Committed []*worker.Event
	Closed    bool
}

// Fetch pops next queued event or waits briefly and returns nil.
func (s *EventSourceStub) Fetch(ctx context.Context) (*worker.Event, error) {
	s.mu.Lock()
	if len(s.Events) > 0 {
		e := s.Events[0]
		s.Events = s.Events[1:]
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Millisecond):
		return nil, nil
	}
}

// Commit records committed event.
func (s *EventSourceStub) Commit(_ context.Context, e *worker.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Committed = append(s.Committed, e)
	return nil
}

// Close marks source as released.
func (s *EventSourceStub) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
}

// CommittedCount returns number of committed events.
func (s *EventSourceStub) CommittedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Committed)
}

// IsClosed reports whether Close was called.
func (s *EventSourceStub) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Closed
}
