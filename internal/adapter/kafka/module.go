package kafka

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderstatus/internal/config"
	"github.com/polkiloo/orderstatus/internal/worker"
)

// Module exposes accepted orders source to fx graph.
var Module = fx.Options(
	fx.Provide(
		newSource,
		func(s *Source) worker.EventSource { return s },
	),
	fx.Invoke(registerLifecycle),
)

type sourceParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var ensureTopicFn = EnsureTopic

func newSource(p sourceParams) (*Source, error) {
	if p.Config.KafkaCreateTopic {
		ctx, cancel := context.WithTimeout(p.Ctx, p.Config.PollTimeout*2)
		defer cancel()
		if err := ensureTopicFn(ctx, p.Config.KafkaBrokers, p.Config.KafkaTopic, p.Logger); err != nil {
			return nil, err
		}
	}

	return NewSource(Options{
		Brokers:     p.Config.KafkaBrokers,
		Topic:       p.Config.KafkaTopic,
		GroupID:     p.Config.KafkaGroupID,
		PollTimeout: p.Config.PollTimeout,
	}, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, source *Source) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			source.Close()
			return nil
		},
	})
}
