package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const table = "payments"

var columns = []string{
	"id",
	"barber_id",
	"amount",
	"period_start",
	"period_end",
	"status",
	"payment_date",
	"notes",
	"services_count",
	"product_sales_count",
	"created_at",
}

// Repository репозиторий выплат комиссии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выплат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает выплату
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"barber_id",
			"amount",
			"period_start",
			"period_end",
			"status",
			"notes",
			"services_count",
			"product_sales_count",
		).
		Values(
			payment.BarberID,
			payment.Amount,
			payment.PeriodStart,
			payment.PeriodEnd,
			payment.Status,
			payment.Notes,
			payment.ServicesCount,
			payment.ProductSalesCount,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time

	return payment, nil
}

// GetByID получает выплату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %w", ErrScanRow, err)
	}

	return payment, nil
}

// ListByBarber получает выплаты барбера, новые периоды первыми
func (r *Repository) ListByBarber(ctx context.Context, barberID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("period_start DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBarber - scan row: %w", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}

// ExistsOverlapping проверяет, есть ли у барбера выплата, чей период пересекается с period
// Полуоткрытые периоды [start, end): соседние периоды не пересекаются
func (r *Repository) ExistsOverlapping(ctx context.Context, barberID int64, period domain.Period) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Lt{"period_start": period.End}).
		Where(squirrel.Gt{"period_end": period.Start}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// MarkPaid переводит выплату из pending в paid и проставляет дату оплаты
// Условное обновление: если выплата уже оплачена, возвращает ErrNotUpdated
func (r *Repository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := markPaidQuery(id, paidAt).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - build update query: %w", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotUpdated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	return payment, nil
}

func markPaidQuery(id int64, paidAt time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", domain.PaymentStatusPaid).
		Set("payment_date", paidAt).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentStatusPending}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var payment domain.Payment
	var createdAt sql.NullTime

	err := row.Scan(
		&payment.ID,
		&payment.BarberID,
		&payment.Amount,
		&payment.PeriodStart,
		&payment.PeriodEnd,
		&payment.Status,
		&payment.PaymentDate,
		&payment.Notes,
		&payment.ServicesCount,
		&payment.ProductSalesCount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	payment.CreatedAt = createdAt.Time

	return &payment, nil
}
