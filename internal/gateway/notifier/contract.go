//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notifier_test
package notifier

import (
	"lionhearts/pkg/logger"
)

type notifierLogger interface {
	Info(msg string, fields ...logger.Field)
}
