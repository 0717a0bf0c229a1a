// Command publisher sends a single accepted order event to Kafka.
//
// The event is read as JSON from stdin when -stdin is set, otherwise it is
// generated with a random order id and the -name customer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/orderstatus/internal/adapter/kafka"
	"github.com/polkiloo/orderstatus/internal/config"
	"github.com/polkiloo/orderstatus/internal/domain/model"
	"github.com/polkiloo/orderstatus/internal/logger"
)

type options struct {
	brokers     []string
	topic       string
	name        string
	fromStdin   bool
	createTopic bool
	timeout     time.Duration
}

const defaultBrokers = "localhost:9092"

func parseOptions(args []string, lookup config.EnvLookup) (options, error) {
	var (
		opts    options
		brokers string
	)
	fs := flag.NewFlagSet("publisher", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&brokers, "k", config.EnvString(lookup, "KAFKA_BROKERS", defaultBrokers), "Comma separated Kafka seed brokers")
	fs.StringVar(&opts.topic, "topic", config.EnvString(lookup, "KAFKA_TOPIC", config.DefaultKafkaTopic), "Accepted orders topic")
	fs.StringVar(&opts.name, "name", "Ada", "Customer name for generated event")
	fs.BoolVar(&opts.fromStdin, "stdin", false, "Read event JSON from stdin")
	fs.BoolVar(&opts.createTopic, "create-topic", false, "Create topic when missing")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Produce timeout")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse flags: %w", err)
	}

	opts.brokers = config.SplitList(brokers)
	if len(opts.brokers) == 0 {
		return opts, fmt.Errorf("kafka brokers must be provided")
	}
	return opts, nil
}

func buildEvent(opts options, stdin io.Reader) (model.AcceptedOrderEvent, error) {
	if !opts.fromStdin {
		return model.AcceptedOrderEvent{ID: uuid.New(), CustomerName: opts.name}, nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return model.AcceptedOrderEvent{}, fmt.Errorf("read stdin: %w", err)
	}
	return model.DecodeAcceptedOrder(raw)
}

func main() {
	l := logger.NewWithWriter(os.Stderr, config.EnvString(os.LookupEnv, "LOG_LEVEL", "info"))

	opts, err := parseOptions(os.Args[1:], os.LookupEnv)
	if err != nil {
		l.Error("invalid options", slog.String("error", err.Error()))
		os.Exit(2)
	}

	event, err := buildEvent(opts, os.Stdin)
	if err != nil {
		l.Error("build event failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if opts.createTopic {
		if err := kafka.EnsureTopic(ctx, opts.brokers, opts.topic, l); err != nil {
			l.Error("ensure topic failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	publisher, err := kafka.NewPublisher(opts.brokers, opts.topic)
	if err != nil {
		l.Error("create publisher failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer publisher.Close()

	record, err := publisher.Publish(ctx, event)
	if err != nil {
		l.Error("publish failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	l.Info("accepted order published",
		slog.String("order_id", event.ID.String()),
		slog.String("topic", record.Topic),
		slog.Int("partition", int(record.Partition)),
		slog.Int64("offset", record.Offset),
	)
}
