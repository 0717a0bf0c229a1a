package model

import (
	"strconv"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
)

// Status describes order delivery lifecycle.
// Accepted and Rejected are set only on creation; Rejected and Delivered are terminal.
type Status int

const (
	StatusAccepted Status = iota
	StatusRejected
	StatusBeingPrepared
	StatusReadyForPickUp
	StatusPickedUp
	StatusDelivered
)

var statusNames = map[Status]string{
	StatusAccepted:       "Accepted",
	StatusRejected:       "Rejected",
	StatusBeingPrepared:  "BeingPrepared",
	StatusReadyForPickUp: "ReadyForPickUp",
	StatusPickedUp:       "PickedUp",
	StatusDelivered:      "Delivered",
}

var statusDescriptions = map[Status]string{
	StatusAccepted:       "Your order has been accepted by the restaurant",
	StatusRejected:       "Unfortunately, the restaurant cannot fulfil your order at this time. Please try one of our many other delicious restaurants!",
	StatusBeingPrepared:  "Your food is being prepared",
	StatusReadyForPickUp: "An order is ready for pickup",
	StatusPickedUp:       "Your order has been picked up",
	StatusDelivered:      "Your order has been delivered. Thank you for ordering from MTOGO!",
}

// Statuses lists every defined status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusAccepted,
		StatusRejected,
		StatusBeingPrepared,
		StatusReadyForPickUp,
		StatusPickedUp,
		StatusDelivered,
	}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// String returns enumeration name, or the numeric value for undefined statuses.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// Terminal reports whether no further transition is expected.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusDelivered
}

// DescriptionOf returns the customer facing description for status.
func DescriptionOf(s Status) (string, error) {
	description, ok := statusDescriptions[s]
	if !ok {
		return "", &domainErrors.UnknownStatusError{Value: s.String()}
	}
	return description, nil
}

// ParseStatus resolves enumeration name into Status.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, &domainErrors.UnknownStatusError{Value: name}
}
