package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/polkiloo/orderstatus/internal/worker"
)

type fakeConsumer struct {
	mu         sync.Mutex
	fetches    []kgo.Fetches
	lastCtx    context.Context
	maxRecords int
	committed  []*kgo.Record
	commitErr  error
	allowed    int
	closed     int
}

func (f *fakeConsumer) PollRecords(ctx context.Context, max int) kgo.Fetches {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCtx = ctx
	f.maxRecords = max
	if len(f.fetches) == 0 {
		return kgo.Fetches{{Topics: []kgo.FetchTopic{{
			Partitions: []kgo.FetchPartition{{Partition: -1, Err: context.DeadlineExceeded}},
		}}}}
	}
	next := f.fetches[0]
	f.fetches = f.fetches[1:]
	return next
}

func (f *fakeConsumer) CommitRecords(_ context.Context, rs ...*kgo.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, rs...)
	return f.commitErr
}

func (f *fakeConsumer) AllowRebalance() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allowed++
}

func (f *fakeConsumer) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func recordFetch(r *kgo.Record) kgo.Fetches {
	return kgo.Fetches{{Topics: []kgo.FetchTopic{{
		Topic:      r.Topic,
		Partitions: []kgo.FetchPartition{{Partition: r.Partition, Records: []*kgo.Record{r}}},
	}}}}
}

func errorFetch(topic string, err error) kgo.Fetches {
	return kgo.Fetches{{Topics: []kgo.FetchTopic{{
		Topic:      topic,
		Partitions: []kgo.FetchPartition{{Partition: 0, Err: err}},
	}}}}
}

func TestSourceFetchReturnsRecord(t *testing.T) {
	rec := &kgo.Record{Topic: "order.accepted", Partition: 2, Offset: 41, LeaderEpoch: 3, Key: []byte("k"), Value: []byte(`{}`)}
	client := &fakeConsumer{fetches: []kgo.Fetches{recordFetch(rec)}}
	source := newSourceWithClient(client, "order.accepted", time.Second, discardLogger())

	event, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, worker.Event{
		Topic: "order.accepted", Partition: 2, Offset: 41, LeaderEpoch: 3,
		Key: []byte("k"), Value: []byte(`{}`),
	}, *event)
	assert.Equal(t, 1, client.maxRecords)

	_, hasDeadline := client.lastCtx.Deadline()
	assert.True(t, hasDeadline, "poll must be bounded by timeout")
	assert.Zero(t, client.allowed, "rebalance stays blocked until commit")
}

func TestSourceFetchTimeoutIsNotAnError(t *testing.T) {
	client := &fakeConsumer{}
	source := newSourceWithClient(client, "order.accepted", time.Millisecond, discardLogger())

	event, err := source.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, 1, client.allowed)
}

func TestSourceFetchReportsBrokerErrors(t *testing.T) {
	brokerErr := errors.New("broker not available")
	client := &fakeConsumer{fetches: []kgo.Fetches{errorFetch("order.accepted", brokerErr)}}
	source := newSourceWithClient(client, "order.accepted", time.Second, discardLogger())

	event, err := source.Fetch(context.Background())
	assert.Nil(t, event)
	require.Error(t, err)
	assert.ErrorIs(t, err, brokerErr)
}

func TestSourceFetchAfterClose(t *testing.T) {
	client := &fakeConsumer{fetches: []kgo.Fetches{errorFetch("", kgo.ErrClientClosed)}}
	source := newSourceWithClient(client, "order.accepted", time.Second, discardLogger())

	_, err := source.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSourceClosed)
}

func TestSourceCommit(t *testing.T) {
	client := &fakeConsumer{}
	source := newSourceWithClient(client, "order.accepted", time.Second, discardLogger())

	event := &worker.Event{Topic: "order.accepted", Partition: 1, Offset: 7, LeaderEpoch: 2}
	require.NoError(t, source.Commit(context.Background(), event))
	require.Len(t, client.committed, 1)
	assert.Equal(t, "order.accepted", client.committed[0].Topic)
	assert.Equal(t, int32(1), client.committed[0].Partition)
	assert.Equal(t, int64(7), client.committed[0].Offset)
	assert.Equal(t, int32(2), client.committed[0].LeaderEpoch)
	assert.Equal(t, 1, client.allowed)

	client.commitErr = errors.New("rebalance in progress")
	err := source.Commit(context.Background(), event)
	assert.ErrorContains(t, err, "commit offset 7")
	assert.Equal(t, 2, client.allowed, "rebalance must be allowed even on failure")
}

func TestSourceCloseIsIdempotent(t *testing.T) {
	client := &fakeConsumer{}
	source := newSourceWithClient(client, "order.accepted", time.Second, discardLogger())

	source.Close()
	source.Close()
	assert.Equal(t, 1, client.closed)
}

func TestNewSourceRequiresBrokers(t *testing.T) {
	_, err := NewSource(Options{Topic: "order.accepted", GroupID: "g", PollTimeout: time.Second}, discardLogger())
	assert.Error(t, err)
}

func TestSourceImplementsEventSource(t *testing.T) {
	var _ worker.EventSource = (*Source)(nil)
}
