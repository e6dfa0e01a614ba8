//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_order_audit_get_test
package admin_order_audit_get

import (
	"context"

	"lionhearts/internal/entities"
	"lionhearts/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}

type Service interface {
	Audit(ctx context.Context, id string) ([]entities.OrderAuditEntry, error)
}
