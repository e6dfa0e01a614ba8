//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=metrics_test
package metrics

import "lionhearts/pkg/logger"

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
}
