package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid order", ErrInvalidOrder},
		{"not found", ErrOrderStatusNotFound},
		{"duplicate", ErrDuplicateOrder},
		{"unknown status", ErrUnknownStatus},
		{"internal", ErrInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"invalid order", NewInvalidOrderError("The order must have a valid order id"), ErrInvalidOrder, "The order must have a valid order id"},
		{"not found", NewOrderStatusNotFoundError(id), ErrOrderStatusNotFound, fmt.Sprintf("OrderStatus with OrderId %s not found in database.", id)},
		{"duplicate", NewDuplicateOrderError(id), ErrDuplicateOrder, fmt.Sprintf("OrderStatus with OrderId %s already exists.", id)},
		{"unknown status", &UnknownStatusError{Value: "7"}, ErrUnknownStatus, `unknown status "7"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.sentinel) {
				t.Fatalf("expected %v to match %v", tc.err, tc.sentinel)
			}
			wrapped := fmt.Errorf("wrapped: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.sentinel) {
				t.Fatalf("expected wrapped error to match %v", tc.sentinel)
			}
			if tc.err.Error() != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, tc.err.Error())
			}
		})
	}
}

func TestIsDomain(t *testing.T) {
	id := uuid.New()
	if !IsDomain(NewInvalidOrderError("x")) {
		t.Fatal("invalid order should be a domain error")
	}
	if !IsDomain(NewOrderStatusNotFoundError(id)) {
		t.Fatal("not found should be a domain error")
	}
	if !IsDomain(NewDuplicateOrderError(id)) {
		t.Fatal("duplicate should be a domain error")
	}
	if IsDomain(&UnknownStatusError{Value: "x"}) {
		t.Fatal("unknown status must not be propagated as a domain error")
	}
	if IsDomain(stdErrors.New("boom")) {
		t.Fatal("generic error must not be a domain error")
	}
}
