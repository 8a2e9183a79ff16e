package appointment

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

const table = "appointments"

var columns = []string{
	"id",
	"client_id",
	"client_name",
	"barber_id",
	"service_id",
	"date",
	"duration_minutes",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"client_name",
			"barber_id",
			"service_id",
			"date",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			appointment.ClientID,
			appointment.ClientName,
			appointment.BarberID,
			appointment.ServiceID,
			appointment.Date,
			appointment.DurationMinutes,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByFilter получает записи барбера с фильтрацией по периоду и статусам
// Внутри транзакции найденные строки блокируются (FOR UPDATE) - используется при создании записи
func (r *Repository) GetByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barber_id": filter.BarberID}).
		OrderBy("date ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date": *filter.To})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatusIf переводит запись из статуса from в статус to
// Условие status = from делает обновление атомарной проверкой-и-записью:
// если статус успел измениться, возвращается ErrStatusConflict
func (r *Repository) UpdateStatusIf(
	ctx context.Context,
	id int64,
	from, to domain.AppointmentStatus,
) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateStatusIfQuery(id, from, to).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusIf - build update query: %w", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusIf - execute update: %w", ErrExecQuery, err)
	}

	return appointment, nil
}

func updateStatusIfQuery(id int64, from, to domain.AppointmentStatus) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует строку в доменную модель
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.ClientName,
		&appointment.BarberID,
		&appointment.ServiceID,
		&appointment.Date,
		&appointment.DurationMinutes,
		&appointment.Status,
		&appointment.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}
