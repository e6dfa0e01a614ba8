// Package catalog holds the static tables of the Valentine's rose sale:
// package variants with their prices, delivery slots, delivery locations and
// display labels for order and payment statuses.
package catalog

import (
	"strings"

	"lionhearts/internal/entities"
)

type PackageID string

const (
	Rose              PackageID = "ROSE"
	RoseNote          PackageID = "ROSE_NOTE"
	RoseNoteChocolate PackageID = "ROSE_NOTE_CHOC"
)

// BasePackage is the only variant that may be ordered without a note.
const BasePackage = Rose

type Package struct {
	ID          PackageID
	Label       string
	Description string
	PriceCents  int64
}

var packages = []Package{
	{ID: Rose, Label: "Single Rose", Description: "Classic rose delivery.", PriceCents: 500},
	{ID: RoseNote, Label: "Rose + Note", Description: "Add a handwritten note.", PriceCents: 700},
	{ID: RoseNoteChocolate, Label: "Rose + Note + Chocolate Bar", Description: "Sweeten the moment.", PriceCents: 1000},
}

var timeSlots = []string{
	"9:00–11:00 AM",
	"11:00 AM–1:00 PM",
	"1:00–3:00 PM",
	"3:00–5:00 PM",
	"5:00–7:00 PM",
}

// OtherLocation is the sentinel dorm entry that requires a free-form location.
const OtherLocation = "Other (Adjacent dorm or campus location)"

const otherMarker = "Other"

var dorms = []string{
	"Broadway Hall",
	"Furnald Hall",
	"Hartley Hall",
	"Wallach Hall",
	"John Jay Hall",
	"Livingston Hall",
	"Schapiro Hall",
	"Wien Hall",
	"Ruggles Hall",
	"Harmony Hall",
	"East Campus",
	"International House",
	"Bard Hall",
	"Butler Hall",
	"Watt Hall",
	"McBain Hall",
	"Nussbaum Hall",
	"River Hall",
	"Greenborough Hall",
	"600 West 113th",
	"611 West 112th",
	"619 West 113th",
	"623 West 113th",
	"627 West 115th",
	"633 West 115th",
	OtherLocation,
}

var statusLabels = map[entities.OrderStatusType]string{
	entities.OrderPlaced:         "Placed",
	entities.OrderOutForDelivery: "Out for Delivery",
	entities.OrderDelivered:      "Delivered",
	entities.OrderCancelled:      "Cancelled",
}

var paymentLabels = map[entities.PaymentStatusType]string{
	entities.PaymentPaid:    "Paid",
	entities.PaymentPending: "Pending",
	entities.PaymentFailed:  "Failed",
}

// Packages returns the variants in display order.
func Packages() []Package {
	return append([]Package(nil), packages...)
}

func PackageByID(id string) (Package, bool) {
	for _, p := range packages {
		if string(p.ID) == id {
			return p, true
		}
	}
	return Package{}, false
}

func IsPackage(id string) bool {
	_, ok := PackageByID(id)
	return ok
}

// PriceCents returns the authoritative price of a variant, or 0 for an unknown id.
func PriceCents(id string) int64 {
	p, ok := PackageByID(id)
	if !ok {
		return 0
	}
	return p.PriceCents
}

func RequiresNote(id string) bool {
	return IsPackage(id) && PackageID(id) != BasePackage
}

func TimeSlots() []string {
	return append([]string(nil), timeSlots...)
}

func IsTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func Dorms() []string {
	return append([]string(nil), dorms...)
}

// IsOtherLocation reports whether the dorm value selects a free-form location.
func IsOtherLocation(dorm string) bool {
	return strings.Contains(dorm, otherMarker)
}

func StatusLabel(s entities.OrderStatusType) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s.String()
}

func PaymentLabel(s entities.PaymentStatusType) string {
	if label, ok := paymentLabels[s]; ok {
		return label
	}
	return s.String()
}
