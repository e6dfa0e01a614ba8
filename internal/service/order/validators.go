package order

import (
	"strings"
	"unicode/utf8"

	"lionhearts/internal/catalog"
	"lionhearts/internal/entities"
)

const (
	dormMinLen          = 2
	roomMinLen          = 1
	addresseeMinLen     = 2
	otherLocationMinLen = 3
	noteMaxLen          = 200
)

const (
	issuePackage       = "Select a valid package."
	issueDeliveryTime  = "Select a valid delivery time."
	issueDorm          = "Select a dorm or location."
	issueRoom          = "Room is required."
	issueAddressee     = "Addressee name required."
	issueAnonymity     = "Anonymity choice is required."
	issueNoteTooLong   = "Note must be at most 200 characters."
	issueStatus        = "Select a valid status."
	issuePaymentStatus = "Select a valid payment status."
	issuePrice         = "Price must not be negative."
)

// validateSubmission applies the structural rules first and reports every
// failure, then the cross-field rules one at a time.
func validateSubmission(s entities.OrderSubmission) error {
	var issues []FieldIssue

	if !catalog.IsPackage(s.PackageID) {
		issues = append(issues, FieldIssue{Field: "packageId", Message: issuePackage})
	}
	if !catalog.IsTimeSlot(s.DeliveryTime) {
		issues = append(issues, FieldIssue{Field: "deliveryTime", Message: issueDeliveryTime})
	}
	if !hasMinLen(s.Dorm, dormMinLen) {
		issues = append(issues, FieldIssue{Field: "dorm", Message: issueDorm})
	}
	if !hasMinLen(s.Room, roomMinLen) {
		issues = append(issues, FieldIssue{Field: "room", Message: issueRoom})
	}
	if !hasMinLen(s.AddresseeName, addresseeMinLen) {
		issues = append(issues, FieldIssue{Field: "addresseeName", Message: issueAddressee})
	}
	if s.IsAnonymous == nil {
		issues = append(issues, FieldIssue{Field: "isAnonymous", Message: issueAnonymity})
	}
	if s.Note != nil && utf8.RuneCountInString(*s.Note) > noteMaxLen {
		issues = append(issues, FieldIssue{Field: "note", Message: issueNoteTooLong})
	}

	if len(issues) > 0 {
		return newValidationError(MsgInvalidOrder, issues...)
	}

	if catalog.RequiresNote(s.PackageID) && isBlank(s.Note) {
		return newValidationError(MsgNoteRequired, FieldIssue{Field: "note", Message: MsgNoteRequired})
	}

	if catalog.IsOtherLocation(s.Dorm) && !hasOtherLocation(s.OtherLocation) {
		return newValidationError(MsgOtherLocationRequired, FieldIssue{Field: "otherLocation", Message: MsgOtherLocationRequired})
	}

	return nil
}

// validateModify checks only the fields present in the edit.
func validateModify(m entities.OrderModify) error {
	var issues []FieldIssue

	if m.Status != nil && !m.Status.IsValid() {
		issues = append(issues, FieldIssue{Field: "status", Message: issueStatus})
	}
	if m.PaymentStatus != nil && !m.PaymentStatus.IsValid() {
		issues = append(issues, FieldIssue{Field: "paymentStatus", Message: issuePaymentStatus})
	}
	if m.PackageType != nil && !catalog.IsPackage(*m.PackageType) {
		issues = append(issues, FieldIssue{Field: "packageType", Message: issuePackage})
	}
	if m.PriceCents != nil && *m.PriceCents < 0 {
		issues = append(issues, FieldIssue{Field: "priceCents", Message: issuePrice})
	}
	if m.DeliveryTime != nil && !catalog.IsTimeSlot(*m.DeliveryTime) {
		issues = append(issues, FieldIssue{Field: "deliveryTime", Message: issueDeliveryTime})
	}
	if m.Dorm != nil && !hasMinLen(*m.Dorm, dormMinLen) {
		issues = append(issues, FieldIssue{Field: "dorm", Message: issueDorm})
	}
	if m.Room != nil && !hasMinLen(*m.Room, roomMinLen) {
		issues = append(issues, FieldIssue{Field: "room", Message: issueRoom})
	}
	if m.AddresseeName != nil && !hasMinLen(*m.AddresseeName, addresseeMinLen) {
		issues = append(issues, FieldIssue{Field: "addresseeName", Message: issueAddressee})
	}
	if m.Note != nil && utf8.RuneCountInString(*m.Note) > noteMaxLen {
		issues = append(issues, FieldIssue{Field: "note", Message: issueNoteTooLong})
	}

	if len(issues) > 0 {
		return newValidationError(MsgInvalidOrder, issues...)
	}
	return nil
}

func hasMinLen(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func hasOtherLocation(s *string) bool {
	return s != nil && utf8.RuneCountInString(strings.TrimSpace(*s)) >= otherLocationMinLen
}
