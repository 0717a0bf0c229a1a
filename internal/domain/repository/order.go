package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderstatus/internal/domain/model"
)

// OrderStatusRepository describes persistence operations with order status records.
//
// Create fails with errors.ErrDuplicateOrder when a record for the order already exists.
// GetByOrderID and UpdateStatus fail with errors.ErrOrderStatusNotFound when there is none.
type OrderStatusRepository interface {
	Create(ctx context.Context, record model.OrderStatus) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error
}
