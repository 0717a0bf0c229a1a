package model

import (
	"fmt"

	"github.com/google/uuid"
)

// OrderStatus is the persisted status record of an order.
type OrderStatus struct {
	OrderID      uuid.UUID
	CustomerName string
	Status       Status
}

// NewAcceptedOrderStatus builds a record in its initial accepted state.
func NewAcceptedOrderStatus(orderID uuid.UUID, customerName string) OrderStatus {
	return OrderStatus{OrderID: orderID, CustomerName: customerName, Status: StatusAccepted}
}

// Render formats the greeting shown to the customer.
func (o OrderStatus) Render() (string, error) {
	description, err := DescriptionOf(o.Status)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Hi %s! %s.", o.CustomerName, description), nil
}
