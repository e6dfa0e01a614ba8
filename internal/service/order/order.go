package order

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	"lionhearts/internal/catalog"
	"lionhearts/internal/entities"
	"lionhearts/pkg/logger"
	"lionhearts/pkg/retrier"
)

type Service struct {
	repository Repository
	txManager  TxManager
	identity   IdentityFactory
	policy     StatusPolicy
	publisher  EventPublisher
	gate       *Gate
	retrier    retrier.Retrier
	log        serviceLogger
}

func New(
	repository Repository,
	txManager TxManager,
	identity IdentityFactory,
	policy StatusPolicy,
	publisher EventPublisher,
	gate *Gate,
	retrier retrier.Retrier,
	log serviceLogger,
) *Service {
	return &Service{
		repository: repository,
		txManager:  txManager,
		identity:   identity,
		policy:     policy,
		publisher:  publisher,
		gate:       gate,
		retrier:    retrier,
		log:        log,
	}
}

// CheckOpen reports whether orders are accepted right now.
func (s *Service) CheckOpen() error {
	return s.gate.Check()
}

// Create places a customer order: gate, validation, pricing, identifier
// minting with retry on collision, then a single insert.
func (s *Service) Create(ctx context.Context, submission entities.OrderSubmission) (*entities.OrderConfirmation, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}

	if err := validateSubmission(submission); err != nil {
		return nil, err
	}

	priceCents := catalog.PriceCents(submission.PackageID)
	if priceCents <= 0 {
		return nil, fmt.Errorf("%w: package %q", ErrPricingDefect, submission.PackageID)
	}

	draft := newDraft(submission, priceCents)

	var (
		created  *entities.Order
		attempts int
	)
	err := s.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempts++
		draft.OrderNumber, draft.TrackingCode = s.identity.Generate(s.gate.Now())

		order, err := s.repository.Create(ctx, draft)
		if err != nil {
			if errors.Is(err, ErrConflict) {
				OrderNumberCollisionsTotal.Inc()
				s.log.Warn("order number collision",
					logger.NewField("order_number", draft.OrderNumber),
					logger.NewField("attempt", attempts),
				)
			}
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrIdentifierExhausted, attempts, err)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	OrdersCreatedTotal.WithLabelValues(created.PackageType).Inc()

	return &entities.OrderConfirmation{
		OrderNumber:  created.OrderNumber,
		TrackingCode: created.TrackingCode,
		Status:       created.Status,
		PriceCents:   created.PriceCents,
	}, nil
}

// Track returns the order only when the tracking code matches. An unknown
// number and a wrong code are indistinguishable to the caller.
func (s *Service) Track(ctx context.Context, orderNumber, trackingCode string) (*entities.Order, error) {
	if trackingCode == "" {
		return nil, newValidationError(MsgTrackingCodeRequired, FieldIssue{Field: "code", Message: MsgTrackingCodeRequired})
	}

	order, err := s.repository.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by number: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(order.TrackingCode), []byte(trackingCode)) != 1 {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *Service) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, newValidationError(MsgUnknownStatusFilter, FieldIssue{Field: "status", Message: issueStatus})
	}

	orders, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Update applies an admin edit inside a transaction and records every changed
// field in the audit trail. A status change is published after commit;
// publication failures are logged, not returned.
func (s *Service) Update(ctx context.Context, id string, modify entities.OrderModify) (*entities.Order, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrOrderNotFound
	}

	if err := validateModify(modify); err != nil {
		return nil, err
	}

	var (
		updated *entities.Order
		event   *entities.OrderStatusChanged
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		edit, err := s.resolveModify(*current, modify)
		if err != nil {
			return err
		}

		changes := diff(*current, edit)
		if len(changes) == 0 {
			updated = current
			return nil
		}

		updated, err = s.repository.Update(ctx, id, edit)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		for i := range changes {
			changes[i].OrderID = current.ID
			changes[i].ChangedAt = updated.UpdatedAt
		}
		if err := s.repository.AppendAudit(ctx, changes); err != nil {
			return fmt.Errorf("append audit: %w", err)
		}

		if updated.Status != current.Status {
			event = &entities.OrderStatusChanged{
				OrderID:     updated.ID,
				OrderNumber: updated.OrderNumber,
				FromStatus:  current.Status,
				Status:      updated.Status,
				ChangedAt:   updated.UpdatedAt,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if event != nil {
		OrderStatusTransitionsTotal.WithLabelValues(event.FromStatus.String(), event.Status.String()).Inc()

		if err := s.publisher.PublishStatusChanged(ctx, *event); err != nil {
			s.log.Error("publish status changed",
				logger.NewField("order_id", event.OrderID),
				logger.NewField("status", event.Status.String()),
				logger.NewField("error", err),
			)
		}
	}

	return updated, nil
}

// Audit returns the admin edit trail of an order, oldest first.
func (s *Service) Audit(ctx context.Context, id string) ([]entities.OrderAuditEntry, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrOrderNotFound
	}

	if _, err := s.repository.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	entries, err := s.repository.ListAudit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}

// resolveModify checks the edit against the stored order: the status policy
// and the other-location rule on the merged record. An edit that moves the
// order away from "Other" clears the stored location.
func (s *Service) resolveModify(current entities.Order, modify entities.OrderModify) (entities.OrderModify, error) {
	if modify.Status != nil && !s.policy.Allow(current.Status, *modify.Status) {
		return modify, newValidationError(MsgTransitionNotAllowed, FieldIssue{
			Field:   "status",
			Message: fmt.Sprintf("Cannot move order from %s to %s.", catalog.StatusLabel(current.Status), catalog.StatusLabel(*modify.Status)),
		})
	}

	dorm := current.Dorm
	if modify.Dorm != nil {
		dorm = *modify.Dorm
	}

	if !catalog.IsOtherLocation(dorm) {
		if current.OtherLocation != nil || (modify.OtherLocation != nil && *modify.OtherLocation != "") {
			modify.OtherLocation = pointer.To("")
		}
		return modify, nil
	}

	location := current.OtherLocation
	if modify.OtherLocation != nil {
		location = modify.OtherLocation
	}
	if !hasOtherLocation(location) {
		return modify, newValidationError(MsgOtherLocationRequired, FieldIssue{Field: "otherLocation", Message: MsgOtherLocationRequired})
	}
	return modify, nil
}

func newDraft(s entities.OrderSubmission, priceCents int64) entities.OrderDraft {
	draft := entities.OrderDraft{
		Status:        entities.DefaultOrderStatus,
		PaymentStatus: entities.PaymentPaid,
		PackageType:   s.PackageID,
		PriceCents:    priceCents,
		DeliveryTime:  s.DeliveryTime,
		Dorm:          s.Dorm,
		Room:          s.Room,
		AddresseeName: s.AddresseeName,
		SenderName:    nonEmpty(s.SenderName),
		IsAnonymous:   *s.IsAnonymous,
		Note:          nonEmpty(s.Note),
	}
	if catalog.IsOtherLocation(s.Dorm) {
		draft.OtherLocation = nonEmpty(s.OtherLocation)
	}
	return draft
}

// diff lists the fields of modify whose value differs from current.
func diff(current entities.Order, m entities.OrderModify) []entities.OrderAuditEntry {
	var changes []entities.OrderAuditEntry

	add := func(field string, oldValue, newValue *string) {
		if equalValues(oldValue, newValue) {
			return
		}
		changes = append(changes, entities.OrderAuditEntry{
			Field:    field,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}

	if m.Status != nil {
		add("status", pointer.To(current.Status.String()), pointer.To(m.Status.String()))
	}
	if m.PaymentStatus != nil {
		add("paymentStatus", pointer.To(current.PaymentStatus.String()), pointer.To(m.PaymentStatus.String()))
	}
	if m.PackageType != nil {
		add("packageType", pointer.To(current.PackageType), m.PackageType)
	}
	if m.PriceCents != nil {
		add("priceCents", pointer.To(strconv.FormatInt(current.PriceCents, 10)), pointer.To(strconv.FormatInt(*m.PriceCents, 10)))
	}
	if m.DeliveryTime != nil {
		add("deliveryTime", pointer.To(current.DeliveryTime), m.DeliveryTime)
	}
	if m.Dorm != nil {
		add("dorm", pointer.To(current.Dorm), m.Dorm)
	}
	if m.Room != nil {
		add("room", pointer.To(current.Room), m.Room)
	}
	if m.OtherLocation != nil {
		add("otherLocation", current.OtherLocation, nonEmpty(m.OtherLocation))
	}
	if m.AddresseeName != nil {
		add("addresseeName", pointer.To(current.AddresseeName), m.AddresseeName)
	}
	if m.SenderName != nil {
		add("senderName", current.SenderName, nonEmpty(m.SenderName))
	}
	if m.IsAnonymous != nil {
		add("isAnonymous", pointer.To(strconv.FormatBool(current.IsAnonymous)), pointer.To(strconv.FormatBool(*m.IsAnonymous)))
	}
	if m.Note != nil {
		add("note", current.Note, nonEmpty(m.Note))
	}

	return changes
}

func equalValues(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
