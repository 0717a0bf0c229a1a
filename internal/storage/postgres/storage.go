package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
	"github.com/polkiloo/orderstatus/internal/domain/model"
	"github.com/polkiloo/orderstatus/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderStatusRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger.With(slog.String("component", "postgres"))}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// HealthCheck checks database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// OrderStatuses returns repository of order status records.
func (s *Storage) OrderStatuses() repository.OrderStatusRepository {
	return &orderStatusRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS order_statuses (
            id BIGSERIAL PRIMARY KEY,
            order_id UUID NOT NULL,
            customer_name TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_order_statuses_order_id ON order_statuses(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderStatusRepository implementation ---

func (r *orderStatusRepository) Create(ctx context.Context, record model.OrderStatus) error {
	const query = `INSERT INTO order_statuses (order_id, customer_name, status) VALUES ($1, $2, $3)`
	if _, err := r.storage.pool.Exec(ctx, query, record.OrderID, record.CustomerName, record.Status.String()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domainErrors.NewDuplicateOrderError(record.OrderID)
		}
		r.storage.logger.Error("insert order status failed",
			slog.String("order_id", record.OrderID.String()),
			slog.String("error", err.Error()),
		)
		return err
	}
	r.storage.logger.Info("inserted order status", slog.String("order_id", record.OrderID.String()))
	return nil
}

func (r *orderStatusRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.OrderStatus, error) {
	const query = `SELECT order_id, customer_name, status FROM order_statuses WHERE order_id=$1`
	var (
		record model.OrderStatus
		status string
	)
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&record.OrderID, &record.CustomerName, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.NewOrderStatusNotFoundError(orderID)
		}
		return nil, err
	}
	if record.Status, err = model.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}
	return &record, nil
}

func (r *orderStatusRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	const query = `UPDATE order_statuses SET status=$1, updated_at=NOW() WHERE order_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status.String(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NewOrderStatusNotFoundError(orderID)
	}
	return nil
}
