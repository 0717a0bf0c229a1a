package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderstatus/internal/adapter/kafka"
	"github.com/polkiloo/orderstatus/internal/app"
	"github.com/polkiloo/orderstatus/internal/config"
	"github.com/polkiloo/orderstatus/internal/logger"
	"github.com/polkiloo/orderstatus/internal/server/http/handlers"
	"github.com/polkiloo/orderstatus/internal/server/http/router"
	"github.com/polkiloo/orderstatus/internal/storage/postgres"
	"github.com/polkiloo/orderstatus/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		kafka.Module,
		usecase.Module,
		fx.Provide(func(f *app.OrderStatusFacade) handlers.Facade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
