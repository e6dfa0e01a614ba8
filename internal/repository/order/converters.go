package order

import (
	"lionhearts/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		TrackingCode:  o.TrackingCode,
		Status:        entities.OrderStatusType(o.Status),
		PaymentStatus: entities.PaymentStatusType(o.PaymentStatus),
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

func ToDomainList(orders []OrderDB) []entities.Order {
	if len(orders) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(orders))
	for i := range orders {
		result[i] = *ToDomain(&orders[i])
	}
	return result
}

func FromDomainDraft(id string, draft *entities.OrderDraft) *OrderDB {
	return &OrderDB{
		ID:            id,
		OrderNumber:   draft.OrderNumber,
		TrackingCode:  draft.TrackingCode,
		Status:        draft.Status.String(),
		PaymentStatus: draft.PaymentStatus.String(),
		PackageType:   draft.PackageType,
		PriceCents:    draft.PriceCents,
		DeliveryTime:  draft.DeliveryTime,
		Dorm:          draft.Dorm,
		Room:          draft.Room,
		OtherLocation: nullIfEmpty(draft.OtherLocation),
		AddresseeName: draft.AddresseeName,
		SenderName:    nullIfEmpty(draft.SenderName),
		IsAnonymous:   draft.IsAnonymous,
		Note:          nullIfEmpty(draft.Note),
	}
}

func FromDomainModify(modify *entities.OrderModify) *OrderModifyDB {
	if modify == nil {
		return nil
	}

	result := &OrderModifyDB{
		PackageType:   modify.PackageType,
		PriceCents:    modify.PriceCents,
		DeliveryTime:  modify.DeliveryTime,
		Dorm:          modify.Dorm,
		Room:          modify.Room,
		AddresseeName: modify.AddresseeName,
		IsAnonymous:   modify.IsAnonymous,
		OtherLocation: toNullableText(modify.OtherLocation),
		SenderName:    toNullableText(modify.SenderName),
		Note:          toNullableText(modify.Note),
	}
	if modify.Status != nil {
		status := modify.Status.String()
		result.Status = &status
	}
	if modify.PaymentStatus != nil {
		paymentStatus := modify.PaymentStatus.String()
		result.PaymentStatus = &paymentStatus
	}
	return result
}

func AuditToDomain(a *OrderAuditDB) entities.OrderAuditEntry {
	return entities.OrderAuditEntry{
		ID:        a.ID,
		OrderID:   a.OrderID,
		Field:     a.Field,
		OldValue:  a.OldValue,
		NewValue:  a.NewValue,
		ChangedAt: a.ChangedAt,
	}
}

func AuditToDomainList(entries []OrderAuditDB) []entities.OrderAuditEntry {
	result := make([]entities.OrderAuditEntry, len(entries))
	for i := range entries {
		result[i] = AuditToDomain(&entries[i])
	}
	return result
}

// toNullableText maps an edit field: nil is unset, "" writes NULL.
func toNullableText(s *string) nullableText {
	if s == nil {
		return nullableText{}
	}
	return nullableText{Set: true, Value: nullIfEmpty(s)}
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
