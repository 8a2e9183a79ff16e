package completedservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const (
	table = "completed_services"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"barber_id",
	"service_id",
	"client_id",
	"client_name",
	"price",
	"date",
	"appointment_id",
	"validated_by_admin",
	"validated_at",
	"payment_id",
	"created_at",
}

// Repository репозиторий выполненных услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выполненных услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает выполненную услугу
// Уникальный индекс по appointment_id гарантирует одну услугу на запись клиента
func (r *Repository) Create(ctx context.Context, cs *domain.CompletedService) (*domain.CompletedService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"barber_id",
			"service_id",
			"client_id",
			"client_name",
			"price",
			"date",
			"appointment_id",
		).
		Values(
			cs.BarberID,
			cs.ServiceID,
			cs.ClientID,
			cs.ClientName,
			cs.Price,
			cs.Date,
			cs.AppointmentID,
		).
		Suffix("RETURNING id, validated_by_admin, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cs.ID,
		&cs.ValidatedByAdmin,
		&createdAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyRecorded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	cs.CreatedAt = createdAt.Time

	return cs, nil
}

// GetByID получает выполненную услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CompletedService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	cs, err := scanCompletedService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompletedServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan completed service: %w", ErrScanRow, err)
	}

	return cs, nil
}

// List получает выполненные услуги барбера за период
func (r *Repository) List(ctx context.Context, filter domain.RecordFilter) ([]*domain.CompletedService, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barber_id": filter.BarberID}).
		OrderBy("date ASC", "id ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date": *filter.To})
	}
	if filter.UnvalidatedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"validated_by_admin": false})
	}

	return r.query(ctx, "List", selectBuilder)
}

// ListUnsettled получает подтвержденные и еще не оплаченные услуги барбера с датой раньше before
// Сюда попадают и услуги прошлых периодов, подтвержденные уже после их расчета
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListUnsettled(ctx context.Context, barberID int64, before time.Time) ([]*domain.CompletedService, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"barber_id":          barberID,
			"validated_by_admin": true,
			"payment_id":         nil,
		}).
		Where(squirrel.Lt{"date": before}).
		OrderBy("date ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "ListUnsettled", selectBuilder)
}

// MarkValidated выставляет флаг подтверждения администратором
// Обновление условное (validated_by_admin = false): повторный вызов вернет ErrNotUpdated
func (r *Repository) MarkValidated(ctx context.Context, id int64) (*domain.CompletedService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := markValidatedQuery(id).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkValidated - build update query: %w", ErrBuildQuery, err)
	}

	cs, err := scanCompletedService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotUpdated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MarkValidated - execute update: %w", ErrExecQuery, err)
	}

	return cs, nil
}

// markValidatedQuery строит условное обновление: затрагивает только неподтвержденную строку
func markValidatedQuery(id int64) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("validated_by_admin", true).
		Set("validated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "validated_by_admin": false}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

// ClaimForPayment привязывает услуги к выплате
// Привязываются только строки без выплаты; возвращает количество привязанных строк
func (r *Repository) ClaimForPayment(ctx context.Context, ids []int64, paymentID int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("payment_id", paymentID).
		Where(squirrel.Eq{"id": ids, "payment_id": nil}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ClaimForPayment - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ClaimForPayment - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ClaimForPayment - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.CompletedService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.CompletedService, 0)
	for rows.Next() {
		cs, err := scanCompletedService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompletedService(row rowScanner) (*domain.CompletedService, error) {
	var cs domain.CompletedService
	var createdAt sql.NullTime

	err := row.Scan(
		&cs.ID,
		&cs.BarberID,
		&cs.ServiceID,
		&cs.ClientID,
		&cs.ClientName,
		&cs.Price,
		&cs.Date,
		&cs.AppointmentID,
		&cs.ValidatedByAdmin,
		&cs.ValidatedAt,
		&cs.PaymentID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	cs.CreatedAt = createdAt.Time

	return &cs, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
