package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/polkiloo/orderstatus/internal/worker"
)

const clientID = "order-status"

// ErrSourceClosed is returned by Fetch after the client has been closed.
var ErrSourceClosed = errors.New("kafka source closed")

type consumerClient interface {
	PollRecords(ctx context.Context, maxPollRecords int) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
	AllowRebalance()
	Close()
}

// Options configures Source.
type Options struct {
	Brokers     []string
	Topic       string
	GroupID     string
	PollTimeout time.Duration
}

// Source reads accepted order events from a consumer group with manual commits.
type Source struct {
	client      consumerClient
	topic       string
	pollTimeout time.Duration
	logger      *slog.Logger
	closeOnce   sync.Once
}

// NewSource creates consumer group client subscribed to the topic.
func NewSource(opts Options, logger *slog.Logger) (*Source, error) {
	if len(opts.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers must be provided")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(opts.Brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumerGroup(opts.GroupID),
		kgo.ConsumeTopics(opts.Topic),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	return newSourceWithClient(client, opts.Topic, opts.PollTimeout, logger), nil
}

func newSourceWithClient(client consumerClient, topic string, pollTimeout time.Duration, logger *slog.Logger) *Source {
	return &Source{
		client:      client,
		topic:       topic,
		pollTimeout: pollTimeout,
		logger:      logger.With(slog.String("component", "kafka"), slog.String("topic", topic)),
	}
}

// Fetch waits up to the poll timeout for one record.
func (s *Source) Fetch(ctx context.Context) (*worker.Event, error) {
	pollCtx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	fetches := s.client.PollRecords(pollCtx, 1)
	if fetches.IsClientClosed() {
		return nil, ErrSourceClosed
	}

	var errs []error
	fetches.EachError(func(topic string, partition int32, err error) {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return
		}
		errs = append(errs, fmt.Errorf("fetch %s[%d]: %w", topic, partition, err))
	})

	records := fetches.Records()
	if len(records) == 0 {
		s.client.AllowRebalance()
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		s.logger.Warn("partial fetch error", slog.String("error", err.Error()))
	}

	r := records[0]
	return &worker.Event{
		Topic:       r.Topic,
		Partition:   r.Partition,
		Offset:      r.Offset,
		LeaderEpoch: r.LeaderEpoch,
		Key:         r.Key,
		Value:       r.Value,
	}, nil
}

// Commit stores the offset following the event and lets pending rebalances proceed.
func (s *Source) Commit(ctx context.Context, event *worker.Event) error {
	defer s.client.AllowRebalance()

	record := &kgo.Record{
		Topic:       event.Topic,
		Partition:   event.Partition,
		Offset:      event.Offset,
		LeaderEpoch: event.LeaderEpoch,
	}
	if err := s.client.CommitRecords(ctx, record); err != nil {
		return fmt.Errorf("commit offset %d: %w", event.Offset, err)
	}
	s.logger.Debug("committed offset",
		slog.Int("partition", int(event.Partition)),
		slog.Int64("offset", event.Offset),
	)
	return nil
}

// Close leaves the consumer group and releases the client. Safe to call more than once.
func (s *Source) Close() {
	s.closeOnce.Do(func() {
		s.client.Close()
		s.logger.Info("kafka consumer closed")
	})
}
