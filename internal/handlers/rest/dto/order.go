package dto

import (
	"time"

	"lionhearts/internal/entities"
)

type OrderCreateRequest struct {
	PackageID     string  `json:"packageId"`
	DeliveryTime  string  `json:"deliveryTime"`
	Dorm          string  `json:"dorm"`
	Room          string  `json:"room"`
	OtherLocation *string `json:"otherLocation"`
	AddresseeName string  `json:"addresseeName"`
	SenderName    *string `json:"senderName"`
	IsAnonymous   *bool   `json:"isAnonymous"`
	Note          *string `json:"note"`
}

type OrderCreateResponse struct {
	OrderNumber  string `json:"orderNumber"`
	TrackingCode string `json:"trackingCode"`
	Status       string `json:"status"`
	PriceCents   int64  `json:"priceCents"`
}

// CustomerOrder is what the tracking page may see. It leaves out the sender,
// the tracking code and payment details.
type CustomerOrder struct {
	OrderNumber   string  `json:"orderNumber"`
	Status        string  `json:"status"`
	DeliveryTime  string  `json:"deliveryTime"`
	Dorm          string  `json:"dorm"`
	Room          string  `json:"room"`
	OtherLocation *string `json:"otherLocation"`
	AddresseeName string  `json:"addresseeName"`
	IsAnonymous   bool    `json:"isAnonymous"`
	PackageType   string  `json:"packageType"`
	PriceCents    int64   `json:"priceCents"`
	Note          *string `json:"note"`
}

type AdminOrder struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	TrackingCode  string    `json:"trackingCode"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	PackageType   string    `json:"packageType"`
	PriceCents    int64     `json:"priceCents"`
	DeliveryTime  string    `json:"deliveryTime"`
	Dorm          string    `json:"dorm"`
	Room          string    `json:"room"`
	OtherLocation *string   `json:"otherLocation"`
	AddresseeName string    `json:"addresseeName"`
	SenderName    *string   `json:"senderName"`
	IsAnonymous   bool      `json:"isAnonymous"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders []AdminOrder `json:"orders"`
}

type OrderPatchRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	PackageType   *string `json:"packageType"`
	PriceCents    *int64  `json:"priceCents"`
	DeliveryTime  *string `json:"deliveryTime"`
	Dorm          *string `json:"dorm"`
	Room          *string `json:"room"`
	OtherLocation *string `json:"otherLocation"`
	AddresseeName *string `json:"addresseeName"`
	SenderName    *string `json:"senderName"`
	IsAnonymous   *bool   `json:"isAnonymous"`
	Note          *string `json:"note"`
}

type OrderPatchResponse struct {
	Order AdminOrder `json:"order"`
}

type AuditEntry struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"orderId"`
	Field     string    `json:"field"`
	OldValue  *string   `json:"oldValue"`
	NewValue  *string   `json:"newValue"`
	ChangedAt time.Time `json:"changedAt"`
}

type AuditListResponse struct {
	Entries []AuditEntry `json:"entries"`
}

func (r OrderCreateRequest) ToDomain() entities.OrderSubmission {
	return entities.OrderSubmission{
		PackageID:     r.PackageID,
		DeliveryTime:  r.DeliveryTime,
		Dorm:          r.Dorm,
		Room:          r.Room,
		OtherLocation: r.OtherLocation,
		AddresseeName: r.AddresseeName,
		SenderName:    r.SenderName,
		IsAnonymous:   r.IsAnonymous,
		Note:          r.Note,
	}
}

func (r OrderPatchRequest) ToDomain() entities.OrderModify {
	modify := entities.OrderModify{
		PackageType:   r.PackageType,
		PriceCents:    r.PriceCents,
		DeliveryTime:  r.DeliveryTime,
		Dorm:          r.Dorm,
		Room:          r.Room,
		OtherLocation: r.OtherLocation,
		AddresseeName: r.AddresseeName,
		SenderName:    r.SenderName,
		IsAnonymous:   r.IsAnonymous,
		Note:          r.Note,
	}
	if r.Status != nil {
		status := entities.OrderStatusType(*r.Status)
		modify.Status = &status
	}
	if r.PaymentStatus != nil {
		paymentStatus := entities.PaymentStatusType(*r.PaymentStatus)
		modify.PaymentStatus = &paymentStatus
	}
	return modify
}

func FromConfirmation(c *entities.OrderConfirmation) OrderCreateResponse {
	return OrderCreateResponse{
		OrderNumber:  c.OrderNumber,
		TrackingCode: c.TrackingCode,
		Status:       c.Status.String(),
		PriceCents:   c.PriceCents,
	}
}

func ToCustomerOrder(o *entities.Order) CustomerOrder {
	return CustomerOrder{
		OrderNumber:   o.OrderNumber,
		Status:        o.Status.String(),
		DeliveryTime:  o.DeliveryTime,
		Dorm:          o.Dorm,
		Room:          o.Room,
		OtherLocation: o.OtherLocation,
		AddresseeName: o.AddresseeName,
		IsAnonymous:   o.IsAnonymous,
		PackageType:   o.PackageType,
		PriceCents:    o.PriceCents,
		Note:          o.Note,
	}
}

func ToAdminOrder(o *entities.Order) AdminOrder {
	return AdminOrder{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		TrackingCode:  o.TrackingCode,
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		PackageType:   o.PackageType,
		PriceCents:    o.PriceCents,
		DeliveryTime:  o.DeliveryTime,
		Dorm:          o.Dorm,
		Room:          o.Room,
		OtherLocation: o.OtherLocation,
		AddresseeName: o.AddresseeName,
		SenderName:    o.SenderName,
		IsAnonymous:   o.IsAnonymous,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToAdminOrderList(orders []entities.Order) []AdminOrder {
	result := make([]AdminOrder, 0, len(orders))
	for i := range orders {
		result = append(result, ToAdminOrder(&orders[i]))
	}
	return result
}

func ToAuditEntryList(entries []entities.OrderAuditEntry) []AuditEntry {
	result := make([]AuditEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, AuditEntry{
			ID:        e.ID,
			OrderID:   e.OrderID,
			Field:     e.Field,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			ChangedAt: e.ChangedAt,
		})
	}
	return result
}
