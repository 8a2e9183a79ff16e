package barber

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const (
	table = "barbers"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"user_id",
	"name",
	"payment_period",
	"is_active",
	"calendar_visibility",
	"visible_barber_ids",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с барберами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория барберов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает барбера
// Если пользователь уже привязан к барберу, возвращает ErrBarberAlreadyExists
func (r *Repository) Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	visible := barber.VisibleBarberIDs
	if visible == nil {
		visible = []int64{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"name",
			"payment_period",
			"is_active",
			"calendar_visibility",
			"visible_barber_ids",
		).
		Values(
			barber.UserID,
			barber.Name,
			barber.PaymentPeriod,
			barber.IsActive,
			barber.CalendarVisibility,
			pq.Array(visible),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&barber.ID,
		&createdAt,
		&updatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrBarberAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	barber.VisibleBarberIDs = visible
	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return barber, nil
}

// GetByID получает барбера по ID
// Внутри транзакции строка блокируется (FOR UPDATE): так сериализуются расчеты комиссии одного барбера
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает барбера по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Barber, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan barber: %w", ErrScanRow, op, err)
	}

	return barber, nil
}

// List получает список барберов
// activeOnly = true возвращает только активных
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return barbers, nil
}

// Update частично обновляет профиль барбера
func (r *Repository) Update(ctx context.Context, id int64, update domain.BarberUpdate) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.PaymentPeriod != nil {
		updateBuilder = updateBuilder.Set("payment_period", *update.PaymentPeriod)
	}
	if update.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *update.IsActive)
	}
	if update.CalendarVisibility != nil {
		visible := update.VisibleBarberIDs
		if visible == nil {
			visible = []int64{}
		}
		updateBuilder = updateBuilder.
			Set("calendar_visibility", *update.CalendarVisibility).
			Set("visible_barber_ids", pq.Array(visible))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return barber, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(row rowScanner) (*domain.Barber, error) {
	var barber domain.Barber
	var visible pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&barber.ID,
		&barber.UserID,
		&barber.Name,
		&barber.PaymentPeriod,
		&barber.IsActive,
		&barber.CalendarVisibility,
		&visible,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	barber.VisibleBarberIDs = []int64(visible)
	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
