package dto

import (
	"lionhearts/internal/catalog"
	"lionhearts/internal/entities"
)

type CatalogPackage struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents"`
	RequiresNote bool   `json:"requiresNote"`
}

type Label struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type CatalogResponse struct {
	EventDate       string           `json:"eventDate"`
	Packages        []CatalogPackage `json:"packages"`
	TimeSlots       []string         `json:"timeSlots"`
	Dorms           []string         `json:"dorms"`
	OtherLocation   string           `json:"otherLocation"`
	Statuses        []Label          `json:"statuses"`
	PaymentStatuses []Label          `json:"paymentStatuses"`
}

func NewCatalogResponse(eventDate string) CatalogResponse {
	packages := catalog.Packages()
	res := CatalogResponse{
		EventDate:       eventDate,
		Packages:        make([]CatalogPackage, 0, len(packages)),
		TimeSlots:       catalog.TimeSlots(),
		Dorms:           catalog.Dorms(),
		OtherLocation:   catalog.OtherLocation,
		Statuses:        make([]Label, 0, len(entities.OrderStatuses)),
		PaymentStatuses: make([]Label, 0, len(entities.PaymentStatuses)),
	}

	for _, p := range packages {
		res.Packages = append(res.Packages, CatalogPackage{
			ID:           string(p.ID),
			Label:        p.Label,
			Description:  p.Description,
			PriceCents:   p.PriceCents,
			RequiresNote: catalog.RequiresNote(string(p.ID)),
		})
	}
	for _, s := range entities.OrderStatuses {
		res.Statuses = append(res.Statuses, Label{Value: s.String(), Label: catalog.StatusLabel(s)})
	}
	for _, s := range entities.PaymentStatuses {
		res.PaymentStatuses = append(res.PaymentStatuses, Label{Value: s.String(), Label: catalog.PaymentLabel(s)})
	}
	return res
}
