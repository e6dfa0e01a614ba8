//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"lionhearts/internal/entities"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
}

type Notifier interface {
	Notify(ctx context.Context, notice entities.DeliveryNotice) error
}
