package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderstatus/internal/config"
	"github.com/polkiloo/orderstatus/internal/storage/postgres"
	"github.com/polkiloo/orderstatus/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderStatusFacade,
		func(s *postgres.Storage) HealthChecker { return s },
		newHTTPServer,
		newAcceptedOrdersConsumer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type consumerParams struct {
	fx.In

	Source worker.EventSource
	Facade *OrderStatusFacade
	Config *config.Config
	Logger *slog.Logger
}

func newAcceptedOrdersConsumer(p consumerParams) *worker.AcceptedOrdersConsumer {
	return worker.NewAcceptedOrdersConsumer(
		p.Source,
		p.Facade,
		p.Config.PollPause,
		p.Config.ShutdownTimeout,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Consumer   *worker.AcceptedOrdersConsumer
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting order status service",
				slog.String("addr", p.Server.Addr),
				slog.String("topic", p.Config.KafkaTopic),
			)
			// start context expires once startup completes; the loop ends only via Stop
			p.Consumer.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			consumerErr := p.Consumer.Stop(shutdownCtx)
			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Join(consumerErr, err)
			}
			if consumerErr != nil {
				return consumerErr
			}
			p.Logger.Info("order status service stopped")
			return nil
		},
	})
}
