package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
	"github.com/polkiloo/orderstatus/internal/domain/model"
)

// StatusCreator is the subset of the status service required by the consumer.
type StatusCreator interface {
	CreateAccepted(ctx context.Context, orderID uuid.UUID, customerName string) error
}

// State describes where the consumer loop currently is.
type State int32

const (
	StateStopped State = iota
	StateSubscribed
	StatePolling
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateSubscribed:
		return "subscribed"
	case StatePolling:
		return "polling"
	case StateProcessing:
		return "processing"
	default:
		return "stopped"
	}
}

// AcceptedOrdersConsumer turns accepted order events into status records.
// Events are handled strictly one at a time in receipt order.
// A consumer is single use: once stopped it cannot be started again.
type AcceptedOrdersConsumer struct {
	source         EventSource
	creator        StatusCreator
	pause          time.Duration
	processTimeout time.Duration
	logger         *slog.Logger

	state   atomic.Int32
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

const defaultProcessTimeout = 10 * time.Second

// NewAcceptedOrdersConsumer constructs consumer loop over the given source.
// processTimeout bounds handling of a single event, including its commit.
func NewAcceptedOrdersConsumer(source EventSource, creator StatusCreator, pause, processTimeout time.Duration, logger *slog.Logger) *AcceptedOrdersConsumer {
	if pause < 0 {
		pause = 0
	}
	if processTimeout <= 0 {
		processTimeout = defaultProcessTimeout
	}
	return &AcceptedOrdersConsumer{
		source:         source,
		creator:        creator,
		pause:          pause,
		processTimeout: processTimeout,
		logger:         logger.With(slog.String("component", "accepted_orders_consumer")),
	}
}

// Start launches the loop in background. Calls while running or after Stop are ignored.
func (c *AcceptedOrdersConsumer) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil || c.stopped {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.setState(StateSubscribed)

	go c.run(runCtx, c.done)
}

// Stop cancels the loop and waits until it released the source or ctx is done.
func (c *AcceptedOrdersConsumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		c.logger.Error("accepted orders consumer did not stop in time",
			slog.String("state", c.State().String()),
			slog.String("error", ctx.Err().Error()),
		)
		return fmt.Errorf("stop accepted orders consumer: %w", ctx.Err())
	}
}

// State returns current loop state.
func (c *AcceptedOrdersConsumer) State() State {
	return State(c.state.Load())
}

func (c *AcceptedOrdersConsumer) setState(s State) {
	c.state.Store(int32(s))
}

func (c *AcceptedOrdersConsumer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		c.source.Close()
		c.setState(StateStopped)
		c.logger.Info("accepted orders consumer stopped")
	}()

	c.logger.Info("accepted orders consumer started")

	for {
		if ctx.Err() != nil {
			return
		}

		c.setState(StatePolling)
		event, err := c.source.Fetch(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil:
			c.logger.Warn("fetch accepted order failed", slog.String("error", err.Error()))
		case event != nil:
			c.setState(StateProcessing)
			c.process(ctx, event)
		}

		if !c.wait(ctx) {
			return
		}
	}
}

// process handles event detached from loop cancellation, so shutdown never
// interrupts it midway, but bounded by processTimeout.
func (c *AcceptedOrdersConsumer) process(ctx context.Context, event *Event) {
	processCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.processTimeout)
	defer cancel()
	c.handle(processCtx, event)
}

func (c *AcceptedOrdersConsumer) wait(ctx context.Context) bool {
	if c.pause == 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(c.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *AcceptedOrdersConsumer) handle(ctx context.Context, event *Event) {
	attrs := []any{
		slog.String("topic", event.Topic),
		slog.Int("partition", int(event.Partition)),
		slog.Int64("offset", event.Offset),
	}

	payload, err := model.DecodeAcceptedOrder(event.Value)
	if err != nil {
		c.logger.Error("skip malformed accepted order", append(attrs, slog.String("error", err.Error()))...)
		c.commit(ctx, event, attrs)
		return
	}

	attrs = append(attrs, slog.String("order_id", payload.ID.String()))
	if err := c.creator.CreateAccepted(ctx, payload.ID, payload.CustomerName); err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		switch {
		case errors.Is(err, domainErrors.ErrDuplicateOrder):
			c.logger.Warn("accepted order already registered", attrs...)
		case errors.Is(err, domainErrors.ErrInvalidOrder):
			c.logger.Warn("accepted order rejected", attrs...)
		default:
			c.logger.Error("register accepted order failed", attrs...)
		}
	} else {
		c.logger.Info("accepted order registered", attrs...)
	}

	c.commit(ctx, event, attrs)
}

func (c *AcceptedOrdersConsumer) commit(ctx context.Context, event *Event, attrs []any) {
	if err := c.source.Commit(ctx, event); err != nil {
		c.logger.Warn("commit accepted order failed", append(attrs, slog.String("commit_error", err.Error()))...)
	}
}
