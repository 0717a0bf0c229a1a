package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderstatus/internal/domain/model"
	"github.com/polkiloo/orderstatus/internal/usecase"
)

// HealthChecker reports availability of the persistent store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OrderStatusFacade is the single entry point used by HTTP handlers and the consumer loop.
type OrderStatusFacade struct {
	statuses *usecase.OrderStatusUseCase
	health   HealthChecker
}

func NewOrderStatusFacade(statuses *usecase.OrderStatusUseCase, health HealthChecker) *OrderStatusFacade {
	return &OrderStatusFacade{statuses: statuses, health: health}
}

func (f *OrderStatusFacade) OrderStatus(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error) {
	return f.statuses.GetOrderStatus(ctx, orderID)
}

func (f *OrderStatusFacade) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	return f.statuses.UpdateOrderStatus(ctx, orderID, status)
}

func (f *OrderStatusFacade) CreateAccepted(ctx context.Context, orderID uuid.UUID, customerName string) error {
	return f.statuses.CreateAccepted(ctx, orderID, customerName)
}

func (f *OrderStatusFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
