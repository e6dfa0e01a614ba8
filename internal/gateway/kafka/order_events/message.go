package order_events

import (
	"time"

	"lionhearts/internal/entities"
)

// StatusChangedMessage is the wire form of an order status change.
type StatusChangedMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStatus  string    `json:"from_status"`
	Status      string    `json:"status"`
	ChangedAt   time.Time `json:"changed_at"`
}

func toMessage(event entities.OrderStatusChanged) StatusChangedMessage {
	return StatusChangedMessage{
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		FromStatus:  event.FromStatus.String(),
		Status:      event.Status.String(),
		ChangedAt:   event.ChangedAt.UTC(),
	}
}

func (m StatusChangedMessage) ToDomain() entities.OrderStatusChanged {
	return entities.OrderStatusChanged{
		OrderID:     m.OrderID,
		OrderNumber: m.OrderNumber,
		FromStatus:  entities.OrderStatusType(m.FromStatus),
		Status:      entities.OrderStatusType(m.Status),
		ChangedAt:   m.ChangedAt,
	}
}
