//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=status_metrics_test
package status_metrics

import (
	"context"

	"lionhearts/internal/entities"
)

type Repository interface {
	CountByStatus(ctx context.Context) (map[entities.OrderStatusType]int64, error)
}
