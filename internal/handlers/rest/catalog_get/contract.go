//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=catalog_get_test
package catalog_get

import (
	"lionhearts/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}
