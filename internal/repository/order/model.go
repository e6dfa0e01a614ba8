package order

import "time"

type OrderDB struct {
	ID            string
	OrderNumber   string
	TrackingCode  string
	Status        string
	PaymentStatus string
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

// OrderModifyDB mirrors entities.OrderModify. For nullable columns a set
// field holding nil writes NULL.
type OrderModifyDB struct {
	Status        *string
	PaymentStatus *string
	PackageType   *string
	PriceCents    *int64
	DeliveryTime  *string
	Dorm          *string
	Room          *string
	OtherLocation nullableText
	AddresseeName *string
	SenderName    nullableText
	IsAnonymous   *bool
	Note          nullableText
}

type nullableText struct {
	Set   bool
	Value *string
}

type OrderAuditDB struct {
	ID        int64
	OrderID   string
	Field     string
	OldValue  *string
	NewValue  *string
	ChangedAt time.Time
}
