package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const table = "services"

var columns = []string{
	"id",
	"name",
	"price",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу
func (r *Repository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "price", "duration_minutes", "is_active").
		Values(service.Name, service.Price, service.DurationMinutes, service.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// List получает список услуг, отсортированный по названию
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC")

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

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// Update частично обновляет услугу
// Изменение цены не затрагивает уже записанные выполненные услуги: у них своя копия цены
func (r *Repository) Update(ctx context.Context, id int64, update domain.ServiceUpdate) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Price != nil {
		updateBuilder = updateBuilder.Set("price", *update.Price)
	}
	if update.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *update.DurationMinutes)
	}
	if update.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *update.IsActive)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return service, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Price,
		&service.DurationMinutes,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
