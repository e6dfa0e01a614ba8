//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_order_patch_test
package admin_order_patch

import (
	"context"

	"lionhearts/internal/entities"
	"lionhearts/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Update(ctx context.Context, id string, modify entities.OrderModify) (*entities.Order, error)
}
