//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_gate_test
package admin_gate

import "lionhearts/pkg/logger"

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
