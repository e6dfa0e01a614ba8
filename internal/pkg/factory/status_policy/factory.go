package status_policy

import (
	"errors"
	"fmt"

	"lionhearts/internal/entities"
)

const (
	Permissive = "permissive"
	Strict     = "strict"
)

var ErrUndefinedPolicy = errors.New("undefined status policy")

type Policy interface {
	Allow(from, to entities.OrderStatusType) bool
	Name() string
}

// New resolves ORDER_STATUS_POLICY. An empty name selects the permissive policy.
func New(name string) (Policy, error) {
	switch name {
	case "", Permissive:
		return permissive{}, nil
	case Strict:
		return strict{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUndefinedPolicy, name)
	}
}

// permissive lets an admin jump between any two statuses.
type permissive struct{}

func (permissive) Allow(_, to entities.OrderStatusType) bool {
	return to.IsValid()
}

func (permissive) Name() string {
	return Permissive
}

// strict walks the delivery graph only.
type strict struct{}

func (strict) Allow(from, to entities.OrderStatusType) bool {
	return to.IsValid() && from.CanTransitionTo(to)
}

func (strict) Name() string {
	return Strict
}
