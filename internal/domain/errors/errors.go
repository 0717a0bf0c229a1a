package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrder        = errors.New("invalid order")
	ErrOrderStatusNotFound = errors.New("order status not found")
	ErrDuplicateOrder      = errors.New("duplicate order")
	ErrUnknownStatus       = errors.New("unknown status")
	ErrInternal            = errors.New("internal error")
)

// InvalidOrderError reports caller supplied identity or name that failed validation.
type InvalidOrderError struct {
	Message string
}

// NewInvalidOrderError builds InvalidOrderError with the supplied message.
func NewInvalidOrderError(message string) *InvalidOrderError {
	return &InvalidOrderError{Message: message}
}

func (e *InvalidOrderError) Error() string { return e.Message }

func (e *InvalidOrderError) Is(target error) bool { return target == ErrInvalidOrder }

// OrderStatusNotFoundError reports that no record exists for the order.
type OrderStatusNotFoundError struct {
	OrderID uuid.UUID
}

// NewOrderStatusNotFoundError builds OrderStatusNotFoundError for the order.
func NewOrderStatusNotFoundError(orderID uuid.UUID) *OrderStatusNotFoundError {
	return &OrderStatusNotFoundError{OrderID: orderID}
}

func (e *OrderStatusNotFoundError) Error() string {
	return fmt.Sprintf("OrderStatus with OrderId %s not found in database.", e.OrderID)
}

func (e *OrderStatusNotFoundError) Is(target error) bool { return target == ErrOrderStatusNotFound }

// DuplicateOrderError reports a uniqueness violation on create.
type DuplicateOrderError struct {
	OrderID uuid.UUID
}

// NewDuplicateOrderError builds DuplicateOrderError for the order.
func NewDuplicateOrderError(orderID uuid.UUID) *DuplicateOrderError {
	return &DuplicateOrderError{OrderID: orderID}
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("OrderStatus with OrderId %s already exists.", e.OrderID)
}

func (e *DuplicateOrderError) Is(target error) bool { return target == ErrDuplicateOrder }

// UnknownStatusError reports a status value outside the defined set.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown status %q", e.Value)
}

func (e *UnknownStatusError) Is(target error) bool { return target == ErrUnknownStatus }

// IsDomain reports whether err belongs to the kinds propagated unchanged to callers.
func IsDomain(err error) bool {
	return errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrOrderStatusNotFound) ||
		errors.Is(err, ErrDuplicateOrder)
}
