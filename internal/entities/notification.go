package entities

import "time"

// DeliveryNotice is the message the addressee of an order receives when its
// delivery status moves.
type DeliveryNotice struct {
	OrderID      string
	OrderNumber  string
	Status       OrderStatusType
	Recipient    string
	Sender       string
	Location     string
	DeliveryTime string
	Message      string
	Note         *string
	ChangedAt    time.Time
}
