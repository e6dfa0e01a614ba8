package entities

import "time"

type Order struct {
	ID            string
	OrderNumber   string
	TrackingCode  string
	Status        OrderStatusType
	PaymentStatus PaymentStatusType
	PackageType   string
	PriceCents    int64
	DeliveryTime  string
	Dorm          string
	Room          string
	OtherLocation *string
	AddresseeName string
	SenderName    *string
	IsAnonymous   bool
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderSubmission is an unvalidated customer request. IsAnonymous is a
// pointer because an absent choice is a validation failure, not false.
type OrderSubmission struct {
	PackageID     string
	DeliveryTime  string
	Dorm          string
	Room          string
	OtherLocation *string
	AddresseeName string
	SenderName    *string
	IsAnonymous   *bool
	Note          *string
}

// OrderDraft is a validated, priced order ready to be stored.
type OrderDraft struct {
	OrderNumber   string
	TrackingCode  string
	Status        OrderStatusType
	PaymentStatus PaymentStatusType
	PackageType   string
	PriceCents    int64
	DeliveryTime  string
	Dorm          string
	Room          string
	OtherLocation *string
	AddresseeName string
	SenderName    *string
	IsAnonymous   bool
	Note          *string
}

// OrderModify is a partial admin edit. Nil leaves a field unchanged, an empty
// string clears a nullable text field.
type OrderModify struct {
	Status        *OrderStatusType
	PaymentStatus *PaymentStatusType
	PackageType   *string
	PriceCents    *int64
	DeliveryTime  *string
	Dorm          *string
	Room          *string
	OtherLocation *string
	AddresseeName *string
	SenderName    *string
	IsAnonymous   *bool
	Note          *string
}

func (m OrderModify) IsEmpty() bool {
	return m == OrderModify{}
}

type OrderConfirmation struct {
	OrderNumber  string
	TrackingCode string
	Status       OrderStatusType
	PriceCents   int64
}

type OrderFilter struct {
	Status *OrderStatusType
}

type OrderStatusType string

const (
	OrderPlaced         OrderStatusType = "PLACED"
	OrderOutForDelivery OrderStatusType = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatusType = "DELIVERED"
	OrderCancelled      OrderStatusType = "CANCELLED"
)

const DefaultOrderStatus = OrderPlaced

var OrderStatuses = []OrderStatusType{
	OrderPlaced,
	OrderOutForDelivery,
	OrderDelivered,
	OrderCancelled,
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPlaced, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

var orderTransitions = map[OrderStatusType][]OrderStatusType{
	OrderPlaced:         {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered, OrderCancelled},
}

// CanTransitionTo reports whether next follows s in the delivery graph.
// Writing the current status again is always allowed.
func (s OrderStatusType) CanTransitionTo(next OrderStatusType) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatusType string

const (
	PaymentPaid    PaymentStatusType = "PAID"
	PaymentPending PaymentStatusType = "PENDING"
	PaymentFailed  PaymentStatusType = "FAILED"
)

var PaymentStatuses = []PaymentStatusType{
	PaymentPaid,
	PaymentPending,
	PaymentFailed,
}

func (s PaymentStatusType) String() string {
	return string(s)
}

func (s PaymentStatusType) IsValid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

type OrderAuditEntry struct {
	ID        int64
	OrderID   string
	Field     string
	OldValue  *string
	NewValue  *string
	ChangedAt time.Time
}

type OrderStatusChanged struct {
	OrderID     string
	OrderNumber string
	FromStatus  OrderStatusType
	Status      OrderStatusType
	ChangedAt   time.Time
}
