package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/polkiloo/orderstatus/internal/domain/model"
)

type producerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher writes accepted order events, keyed by order id.
type Publisher struct {
	client producerClient
	topic  string
}

// NewPublisher creates producer waiting for all in-sync replicas.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID+"-publisher"),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Publisher{client: client, topic: topic}, nil
}

// Publish sends event and waits for acknowledgement.
func (p *Publisher) Publish(ctx context.Context, event model.AcceptedOrderEvent) (*kgo.Record, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode accepted order: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.ID.String()),
		Value: data,
	}
	res := p.client.ProduceSync(ctx, record)
	if err := res.FirstErr(); err != nil {
		return nil, fmt.Errorf("produce accepted order: %w", err)
	}
	produced, _ := res.First()
	return produced, nil
}

// Close flushes and releases the producer.
func (p *Publisher) Close() {
	p.client.Close()
}
