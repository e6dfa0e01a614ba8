// Package notification turns order status events into notices for the person
// receiving the roses.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lionhearts/internal/catalog"
	"lionhearts/internal/entities"
	"lionhearts/internal/service/order"
)

// AnonymousSender stands in for the sender on anonymous orders and on orders
// placed without a sender name.
const AnonymousSender = "Secret admirer"

type Service struct {
	repository Repository
	notifier   Notifier
}

func New(repository Repository, notifier Notifier) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
	}
}

// ProcessStatusChanged re-reads the order and notifies the addressee. Events
// that no longer match the stored status are stale and are rejected with
// ErrStatusMismatch.
func (s *Service) ProcessStatusChanged(ctx context.Context, event entities.OrderStatusChanged) (*entities.DeliveryNotice, error) {
	if !event.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedStatus, event.Status)
	}

	current, err := s.repository.GetByID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, event.OrderID)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if current.Status != event.Status {
		return nil, fmt.Errorf("%w: event %s, stored %s", ErrStatusMismatch, event.Status, current.Status)
	}

	notice, err := compose(current, event)
	if err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, *notice)
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	return notice, nil
}

func compose(o *entities.Order, event entities.OrderStatusChanged) (*entities.DeliveryNotice, error) {
	sender := senderName(o)
	location := deliveryLocation(o)

	var message string
	switch o.Status {
	case entities.OrderOutForDelivery:
		message = fmt.Sprintf("%s, a Lion Hearts rose from %s is on its way to %s.", o.AddresseeName, sender, location)
	case entities.OrderDelivered:
		message = fmt.Sprintf("%s, a Lion Hearts rose from %s was delivered to %s.", o.AddresseeName, sender, location)
	case entities.OrderCancelled:
		message = fmt.Sprintf("%s, a Lion Hearts delivery for you was cancelled.", o.AddresseeName)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNothingToNotify, o.Status)
	}

	notice := &entities.DeliveryNotice{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		Status:       o.Status,
		Recipient:    o.AddresseeName,
		Sender:       sender,
		Location:     location,
		DeliveryTime: o.DeliveryTime,
		Message:      message,
		ChangedAt:    event.ChangedAt,
	}
	if o.Status != entities.OrderCancelled {
		notice.Note = o.Note
	}
	return notice, nil
}

func senderName(o *entities.Order) string {
	if o.IsAnonymous || o.SenderName == nil || strings.TrimSpace(*o.SenderName) == "" {
		return AnonymousSender
	}
	return strings.TrimSpace(*o.SenderName)
}

func deliveryLocation(o *entities.Order) string {
	if catalog.IsOtherLocation(o.Dorm) && o.OtherLocation != nil {
		return strings.TrimSpace(*o.OtherLocation)
	}
	return fmt.Sprintf("%s, room %s", o.Dorm, o.Room)
}
