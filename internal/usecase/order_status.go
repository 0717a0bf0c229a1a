package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
	"github.com/polkiloo/orderstatus/internal/domain/model"
	"github.com/polkiloo/orderstatus/internal/domain/repository"
)

const (
	msgInvalidOrder   = "The order must have a valid order id and customer name"
	msgInvalidOrderID = "The order must have a valid order id"
)

// OrderStatusUseCase reads, creates and updates order status records.
// It keeps no mutable state, so concurrent calls need no locking.
type OrderStatusUseCase struct {
	statuses repository.OrderStatusRepository
	logger   *slog.Logger
}

// NewOrderStatusUseCase constructs OrderStatusUseCase.
func NewOrderStatusUseCase(statuses repository.OrderStatusRepository, logger *slog.Logger) *OrderStatusUseCase {
	return &OrderStatusUseCase{
		statuses: statuses,
		logger:   logger.With(slog.String("component", "order_status")),
	}
}

// GetOrderStatus returns the record for the order.
func (u *OrderStatusUseCase) GetOrderStatus(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error) {
	record, err := u.statuses.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, u.boundary("get order status", orderID, err)
	}
	return record, nil
}

// CreateAccepted stores a new record in Accepted status.
func (u *OrderStatusUseCase) CreateAccepted(ctx context.Context, orderID uuid.UUID, customerName string) error {
	if orderID == uuid.Nil || customerName == "" {
		return domainErrors.NewInvalidOrderError(msgInvalidOrder)
	}

	if err := u.statuses.Create(ctx, model.NewAcceptedOrderStatus(orderID, customerName)); err != nil {
		return u.boundary("create order status", orderID, err)
	}
	return nil
}

// UpdateOrderStatus replaces the status of an existing record.
// Any defined status is accepted, including moving backwards.
func (u *OrderStatusUseCase) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	if orderID == uuid.Nil {
		return domainErrors.NewInvalidOrderError(msgInvalidOrderID)
	}
	if !status.Valid() {
		return &domainErrors.UnknownStatusError{Value: status.String()}
	}

	if err := u.statuses.UpdateStatus(ctx, orderID, status); err != nil {
		return u.boundary("update order status", orderID, err)
	}
	return nil
}

// boundary passes domain failures through and hides everything else behind ErrInternal.
func (u *OrderStatusUseCase) boundary(op string, orderID uuid.UUID, err error) error {
	if domainErrors.IsDomain(err) {
		return err
	}
	u.logger.Error(op+" failed",
		slog.String("order_id", orderID.String()),
		slog.String("error", err.Error()),
	)
	if errors.Is(err, domainErrors.ErrInternal) {
		return err
	}
	return fmt.Errorf("%s: %w", op, domainErrors.ErrInternal)
}
