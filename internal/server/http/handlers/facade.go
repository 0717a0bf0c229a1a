package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderstatus/internal/domain/model"
)

// OrderStatusFacade encapsulates order status operations exposed via HTTP.
type OrderStatusFacade interface {
	OrderStatus(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error
}

// HealthFacade reports service dependencies health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	OrderStatusFacade
	HealthFacade
}
