package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

type topicAdmin interface {
	ListTopics(ctx context.Context, topics ...string) (kadm.TopicDetails, error)
	CreateTopics(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topics ...string) (kadm.CreateTopicResponses, error)
}

// EnsureTopic creates the topic with a single partition when the cluster does not have it.
func EnsureTopic(ctx context.Context, brokers []string, topic string, logger *slog.Logger) error {
	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...), kgo.ClientID(clientID))
	if err != nil {
		return fmt.Errorf("create kafka admin: %w", err)
	}
	defer client.Close()

	return ensureTopic(ctx, kadm.NewClient(client), topic, logger)
}

func ensureTopic(ctx context.Context, admin topicAdmin, topic string, logger *slog.Logger) error {
	topics, err := admin.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if _, exists := topics[topic]; exists {
		logger.Debug("kafka topic exists", slog.String("topic", topic))
		return nil
	}

	minISR := "1"
	responses, err := admin.CreateTopics(ctx, 1, 1, map[string]*string{"min.insync.replicas": &minISR}, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, resp := range responses {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
	}

	logger.Info("kafka topic created", slog.String("topic", topic))
	return nil
}
