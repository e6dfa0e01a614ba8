//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"lionhearts/internal/entities"
	"lionhearts/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, draft entities.OrderDraft) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	Update(ctx context.Context, id string, modify entities.OrderModify) (*entities.Order, error)

	AppendAudit(ctx context.Context, entries []entities.OrderAuditEntry) error
	ListAudit(ctx context.Context, orderID string) ([]entities.OrderAuditEntry, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type IdentityFactory interface {
	Generate(now time.Time) (orderNumber string, trackingCode string)
}

type StatusPolicy interface {
	Allow(from, to entities.OrderStatusType) bool
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event entities.OrderStatusChanged) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
