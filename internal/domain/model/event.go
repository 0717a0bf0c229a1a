package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyPayload is returned when an accepted-order message carries no body.
var ErrEmptyPayload = errors.New("empty accepted order payload")

// AcceptedOrderEvent is the payload published on the order.accepted topic.
type AcceptedOrderEvent struct {
	ID           uuid.UUID `json:"Id"`
	CustomerName string    `json:"CustomerName"`
}

// DecodeAcceptedOrder parses raw message payload.
func DecodeAcceptedOrder(raw []byte) (AcceptedOrderEvent, error) {
	var event AcceptedOrderEvent
	if len(raw) == 0 {
		return event, ErrEmptyPayload
	}
	var probe json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return event, fmt.Errorf("decode accepted order: %w", err)
	}
	if string(probe) == "null" {
		return event, ErrEmptyPayload
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		return event, fmt.Errorf("decode accepted order: %w", err)
	}
	return event, nil
}
