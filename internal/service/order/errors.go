package order

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrOrdersClosed  = errors.New("orders are closed")
	ErrOrderNotFound = errors.New("order not found")

	ErrConflict            = errors.New("order number already exists")
	ErrStoreValidation     = errors.New("order rejected by store")
	ErrIdentifierExhausted = errors.New("order number attempts exhausted")
	ErrPricingDefect       = errors.New("package price is not positive")
)

const (
	MsgInvalidOrder          = "Invalid order details."
	MsgNoteRequired          = "A note is required for this package."
	MsgOtherLocationRequired = "Please specify the adjacent dorm or campus location."
	MsgTrackingCodeRequired  = "Tracking code required."
	MsgUnknownStatusFilter   = "Unknown status filter."
	MsgTransitionNotAllowed  = "Status change not allowed."
)

type FieldIssue struct {
	Field   string
	Message string
}

// ValidationError carries a client-facing message and the per-field issues
// behind it. errors.Is(err, ErrValidation) matches it.
type ValidationError struct {
	Message string
	Issues  []FieldIssue
}

func newValidationError(message string, issues ...FieldIssue) *ValidationError {
	return &ValidationError{
		Message: message,
		Issues:  issues,
	}
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldErrors groups issue messages by field, preserving order.
func (e *ValidationError) FieldErrors() map[string][]string {
	result := make(map[string][]string, len(e.Issues))
	for _, issue := range e.Issues {
		result[issue.Field] = append(result[issue.Field], issue.Message)
	}
	return result
}

// ClosedError is returned when an order is placed outside the event date.
// errors.Is(err, ErrOrdersClosed) matches it.
type ClosedError struct {
	EventDate time.Time
}

func (e *ClosedError) Error() string {
	return "orders are closed until " + e.EventDate.Format(time.DateOnly)
}

func (e *ClosedError) Is(target error) bool {
	return target == ErrOrdersClosed
}

// Message renders the client-facing text, e.g. "Orders are only available on February 14, 2026."
func (e *ClosedError) Message() string {
	return "Orders are only available on " + e.EventDate.Format("January 2, 2006") + "."
}
