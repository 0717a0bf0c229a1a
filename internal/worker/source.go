package worker

import "context"

// Event is a single message received from the accepted orders stream.
type Event struct {
	Topic       string
	Partition   int32
	Offset      int64
	LeaderEpoch int32
	Key         []byte
	Value       []byte
}

// EventSource delivers accepted order events one at a time.
//
// Fetch blocks for at most one poll timeout and returns a nil event when
// nothing arrived. Commit marks an event as handled so the source does not
// redeliver it. Close releases the subscription.
type EventSource interface {
	Fetch(ctx context.Context) (*Event, error)
	Commit(ctx context.Context, event *Event) error
	Close()
}
