package test

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderstatus/internal/domain/model"
)

// OrderStatusFacadeStub provides controllable behaviour for order status endpoints.
type OrderStatusFacadeStub struct {
	StatusFn func(context.Context, uuid.UUID) (*model.OrderStatus, error)
	UpdateFn func(context.Context, uuid.UUID, model.Status) error
}

// OrderStatus delegates to provided function or returns an accepted record.
func (s OrderStatusFacadeStub) OrderStatus(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, orderID)
	}
	record := model.NewAcceptedOrderStatus(orderID, "Ada")
	return &record, nil
}

// UpdateOrderStatus executes configured update handler.
func (s OrderStatusFacadeStub) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status)
	}
	return nil
}

// HealthFacadeStub reports configured store health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}
