package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
	"github.com/polkiloo/orderstatus/internal/domain/model"
	testhelpers "github.com/polkiloo/orderstatus/internal/test"
)

func newUseCase(repo *testhelpers.OrderStatusRepositoryStub) *OrderStatusUseCase {
	return NewOrderStatusUseCase(repo, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestCreateAcceptedRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		orderID  uuid.UUID
		customer string
	}{
		{"empty id", uuid.Nil, "Ada"},
		{"empty name", uuid.New(), ""},
		{"both empty", uuid.Nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := testhelpers.NewOrderStatusRepositoryStub()
			uc := newUseCase(repo)

			err := uc.CreateAccepted(context.Background(), tc.orderID, tc.customer)
			if !errors.Is(err, domainErrors.ErrInvalidOrder) {
				t.Fatalf("expected invalid order error, got %v", err)
			}
			if err.Error() != "The order must have a valid order id and customer name" {
				t.Fatalf("unexpected message %q", err.Error())
			}
			if repo.CreatedCount() != 0 {
				t.Fatalf("repository must not be called, got %d calls", repo.CreatedCount())
			}
		})
	}
}

func TestCreateAcceptedStoresAcceptedRecord(t *testing.T) {
	repo := testhelpers.NewOrderStatusRepositoryStub()
	uc := newUseCase(repo)
	id := uuid.New()
	name := testhelpers.RandomCustomerName()

	if err := uc.CreateAccepted(context.Background(), id, name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.Created) != 1 {
		t.Fatalf("expected exactly one create call, got %d", len(repo.Created))
	}
	got := repo.Created[0]
	if got.OrderID != id || got.CustomerName != name || got.Status != model.StatusAccepted {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestCreateAcceptedPropagatesDuplicate(t *testing.T) {
	id := uuid.New()
	repo := testhelpers.NewOrderStatusRepositoryStub(model.NewAcceptedOrderStatus(id, "Ada"))
	uc := newUseCase(repo)

	err := uc.CreateAccepted(context.Background(), id, "Ada")
	if !errors.Is(err, domainErrors.ErrDuplicateOrder) {
		t.Fatalf("expected duplicate order error, got %v", err)
	}
}

func TestCreateAcceptedHidesInfrastructureErrors(t *testing.T) {
	repo := testhelpers.NewOrderStatusRepositoryStub()
	repo.CreateFn = func(context.Context, model.OrderStatus) error {
		return errors.New("connection reset by peer")
	}
	uc := newUseCase(repo)

	err := uc.CreateAccepted(context.Background(), uuid.New(), "Ada")
	if !errors.Is(err, domainErrors.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if domainErrors.IsDomain(err) {
		t.Fatalf("internal error must not be a domain error: %v", err)
	}
}

func TestGetOrderStatus(t *testing.T) {
	id := uuid.New()
	repo := testhelpers.NewOrderStatusRepositoryStub(model.OrderStatus{OrderID: id, CustomerName: "Ada", Status: model.StatusPickedUp})
	uc := newUseCase(repo)

	record, err := uc.GetOrderStatus(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != model.StatusPickedUp || record.CustomerName != "Ada" {
		t.Fatalf("unexpected record %+v", record)
	}

	missing := uuid.New()
	_, err = uc.GetOrderStatus(context.Background(), missing)
	if !errors.Is(err, domainErrors.ErrOrderStatusNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "OrderStatus with OrderId "+missing.String()+" not found in database." {
		t.Fatalf("unexpected message %q", err.Error())
	}

	repo.GetByOrderIDFn = func(context.Context, uuid.UUID) (*model.OrderStatus, error) {
		return nil, errors.New("timeout")
	}
	if _, err := uc.GetOrderStatus(context.Background(), id); !errors.Is(err, domainErrors.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	id := uuid.New()
	repo := testhelpers.NewOrderStatusRepositoryStub(model.NewAcceptedOrderStatus(id, "Ada"))
	uc := newUseCase(repo)

	err := uc.UpdateOrderStatus(context.Background(), uuid.Nil, model.StatusDelivered)
	if !errors.Is(err, domainErrors.ErrInvalidOrder) || err.Error() != "The order must have a valid order id" {
		t.Fatalf("expected invalid order error, got %v", err)
	}
	if len(repo.UpdateCalls) != 0 {
		t.Fatalf("repository must not be touched for empty id")
	}

	if err := uc.UpdateOrderStatus(context.Background(), id, model.Status(42)); !errors.Is(err, domainErrors.ErrUnknownStatus) {
		t.Fatalf("expected unknown status error, got %v", err)
	}

	if err := uc.UpdateOrderStatus(context.Background(), uuid.New(), model.StatusDelivered); !errors.Is(err, domainErrors.ErrOrderStatusNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := uc.UpdateOrderStatus(context.Background(), id, model.StatusDelivered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, err := uc.GetOrderStatus(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.OrderID != id || record.CustomerName != "Ada" || record.Status != model.StatusDelivered {
		t.Fatalf("unexpected record after update %+v", record)
	}
	text, err := record.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if text != "Hi Ada! Your order has been delivered. Thank you for ordering from MTOGO!." {
		t.Fatalf("unexpected render %q", text)
	}
}

func TestUpdateOrderStatusAllowsBackwardTransition(t *testing.T) {
	id := uuid.New()
	repo := testhelpers.NewOrderStatusRepositoryStub(model.OrderStatus{OrderID: id, CustomerName: "Ada", Status: model.StatusPickedUp})
	uc := newUseCase(repo)

	if err := uc.UpdateOrderStatus(context.Background(), id, model.StatusAccepted); err != nil {
		t.Fatalf("backward transition must be accepted, got %v", err)
	}

	repo.UpdateStatusFn = func(context.Context, uuid.UUID, model.Status) error {
		return errors.New("broken pipe")
	}
	if err := uc.UpdateOrderStatus(context.Background(), id, model.StatusDelivered); !errors.Is(err, domainErrors.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
