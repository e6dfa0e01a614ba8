package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"lionhearts/internal/entities"
	"lionhearts/internal/repository"
	"lionhearts/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	ordersTable = "orders"
	auditTable  = "order_audit"

	orderNumberConstraint = "orders_order_number_key"
)

var orderColumns = []string{
	"id",
	"order_number",
	"tracking_code",
	"status",
	"payment_status",
	"package_type",
	"price_cents",
	"delivery_time",
	"dorm",
	"room",
	"other_location",
	"addressee_name",
	"sender_name",
	"is_anonymous",
	"note",
	"created_at",
	"updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, draft entities.OrderDraft) (*entities.Order, error) {
	model := FromDomainDraft(uuid.NewString(), &draft)

	query, args, err := qb.
		Insert(ordersTable).
		Columns(orderColumns[:15]...).
		Values(
			model.ID,
			model.OrderNumber,
			model.TrackingCode,
			model.Status,
			model.PaymentStatus,
			model.PackageType,
			model.PriceCents,
			model.DeliveryTime,
			model.Dorm,
			model.Room,
			model.OtherLocation,
			model.AddresseeName,
			model.SenderName,
			model.IsAnonymous,
			model.Note,
		).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	created, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) &&
			repository.ConstraintName(err) == orderNumberConstraint:
			return nil, order.ErrConflict
		case repository.IsPgErrorWithCode(err, repository.PgErrNotNullViolation),
			repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation):
			return nil, fmt.Errorf("%w: %w", order.ErrStoreValidation, err)
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, false)
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*entities.Order, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, true)
}

func (r *Repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	return r.getOne(ctx, sq.Eq{"order_number": orderNumber}, false)
}

func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns...).
		From(ordersTable).
		OrderBy("created_at DESC", "id DESC")

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	models := make([]OrderDB, 0, 32)
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		models = append(models, *model)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return ToDomainList(models), nil
}

func (r *Repository) Update(ctx context.Context, id string, modify entities.OrderModify) (*entities.Order, error) {
	model := FromDomainModify(&modify)

	builder := qb.Update(ordersTable)

	if model.Status != nil {
		builder = builder.Set("status", model.Status)
	}
	if model.PaymentStatus != nil {
		builder = builder.Set("payment_status", model.PaymentStatus)
	}
	if model.PackageType != nil {
		builder = builder.Set("package_type", model.PackageType)
	}
	if model.PriceCents != nil {
		builder = builder.Set("price_cents", model.PriceCents)
	}
	if model.DeliveryTime != nil {
		builder = builder.Set("delivery_time", model.DeliveryTime)
	}
	if model.Dorm != nil {
		builder = builder.Set("dorm", model.Dorm)
	}
	if model.Room != nil {
		builder = builder.Set("room", model.Room)
	}
	if model.OtherLocation.Set {
		builder = builder.Set("other_location", model.OtherLocation.Value)
	}
	if model.AddresseeName != nil {
		builder = builder.Set("addressee_name", model.AddresseeName)
	}
	if model.SenderName.Set {
		builder = builder.Set("sender_name", model.SenderName.Value)
	}
	if model.IsAnonymous != nil {
		builder = builder.Set("is_anonymous", model.IsAnonymous)
	}
	if model.Note.Set {
		builder = builder.Set("note", model.Note.Value)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	updated, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) ||
			repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
			return nil, order.ErrOrderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %w", order.ErrStoreValidation, err)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(updated), nil
}

// AppendAudit inserts all entries in one round trip.
func (r *Repository) AppendAudit(ctx context.Context, entries []entities.OrderAuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		query, args, err := qb.
			Insert(auditTable).
			Columns("order_id", "field", "old_value", "new_value", "changed_at").
			Values(entry.OrderID, entry.Field, entry.OldValue, entry.NewValue, entry.ChangedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("unexpected order repository append audit error: %w", err)
		}
		batch.Queue(query, args...)
	}

	results := r.querier.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("unexpected order repository append audit error: %w", err)
		}
	}
	return nil
}

func (r *Repository) ListAudit(ctx context.Context, orderID string) ([]entities.OrderAuditEntry, error) {
	query, args, err := qb.
		Select("id", "order_id", "field", "old_value", "new_value", "changed_at").
		From(auditTable).
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("changed_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list audit error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list audit error: %w", err)
	}
	defer rows.Close()

	models := make([]OrderAuditDB, 0, 8)
	for rows.Next() {
		var model OrderAuditDB
		if err := rows.Scan(
			&model.ID,
			&model.OrderID,
			&model.Field,
			&model.OldValue,
			&model.NewValue,
			&model.ChangedAt,
		); err != nil {
			return nil, fmt.Errorf("unexpected order repository list audit error: %w", err)
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list audit error: %w", err)
	}

	return AuditToDomainList(models), nil
}

// CountByStatus returns the number of orders per status; absent statuses are omitted.
func (r *Repository) CountByStatus(ctx context.Context) (map[entities.OrderStatusType]int64, error) {
	query, args, err := qb.
		Select("status", "COUNT(*)").
		From(ordersTable).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository count error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository count error: %w", err)
	}
	defer rows.Close()

	result := make(map[entities.OrderStatusType]int64, len(entities.OrderStatuses))
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("unexpected order repository count error: %w", err)
		}
		result[entities.OrderStatusType(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository count error: %w", err)
	}

	return result, nil
}

func (r *Repository) getOne(ctx context.Context, where sq.Eq, forUpdate bool) (*entities.Order, error) {
	builder := qb.
		Select(orderColumns...).
		From(ordersTable).
		Where(where)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	model, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) ||
			repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToDomain(model), nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var model OrderDB
	err := row.Scan(
		&model.ID,
		&model.OrderNumber,
		&model.TrackingCode,
		&model.Status,
		&model.PaymentStatus,
		&model.PackageType,
		&model.PriceCents,
		&model.DeliveryTime,
		&model.Dorm,
		&model.Room,
		&model.OtherLocation,
		&model.AddresseeName,
		&model.SenderName,
		&model.IsAnonymous,
		&model.Note,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func columnList() string {
	list := orderColumns[0]
	for _, column := range orderColumns[1:] {
		list += ", " + column
	}
	return list
}
