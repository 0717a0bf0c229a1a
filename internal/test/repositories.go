package test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
	"github.com/polkiloo/orderstatus/internal/domain/model"
)

// StatusUpdateCall stores information about UpdateStatus invocations.
type StatusUpdateCall struct {
	OrderID uuid.UUID
	Status  model.Status
}

// OrderStatusRepositoryStub keeps records in memory and enforces order id uniqueness.
type OrderStatusRepositoryStub struct {
	CreateFn       func(context.Context, model.OrderStatus) error
	GetByOrderIDFn func(context.Context, uuid.UUID) (*model.OrderStatus, error)
	UpdateStatusFn func(context.Context, uuid.UUID, model.Status) error

	mu          sync.Mutex
	records     map[uuid.UUID]model.OrderStatus
	Created     []model.OrderStatus
	UpdateCalls []StatusUpdateCall
}

// NewOrderStatusRepositoryStub constructs stub repository seeded with records.
func NewOrderStatusRepositoryStub(seed ...model.OrderStatus) *OrderStatusRepositoryStub {
	s := &OrderStatusRepositoryStub{records: make(map[uuid.UUID]model.OrderStatus, len(seed))}
	for _, r := range seed {
		s.records[r.OrderID] = r
	}
	return s
}

// Create tracks invocations and stores record unless already present.
func (s *OrderStatusRepositoryStub) Create(ctx context.Context, record model.OrderStatus) error {
	s.mu.Lock()
	s.Created = append(s.Created, record)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, record)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[uuid.UUID]model.OrderStatus)
	}
	if _, exists := s.records[record.OrderID]; exists {
		return domainErrors.NewDuplicateOrderError(record.OrderID)
	}
	s.records[record.OrderID] = record
	return nil
}

// GetByOrderID returns stored record or not found.
func (s *OrderStatusRepositoryStub) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error) {
	if s.GetByOrderIDFn != nil {
		return s.GetByOrderIDFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[orderID]
	if !ok {
		return nil, domainErrors.NewOrderStatusNotFoundError(orderID)
	}
	return &record, nil
}

// UpdateStatus records invocation and changes status of stored record.
func (s *OrderStatusRepositoryStub) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	s.mu.Lock()
	s.UpdateCalls = append(s.UpdateCalls, StatusUpdateCall{OrderID: orderID, Status: status})
	s.mu.Unlock()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[orderID]
	if !ok {
		return domainErrors.NewOrderStatusNotFoundError(orderID)
	}
	record.Status = status
	s.records[orderID] = record
	return nil
}

// CreatedCount returns number of Create invocations.
func (s *OrderStatusRepositoryStub) CreatedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Created)
}
