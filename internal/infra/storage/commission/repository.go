package commission

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const table = "commissions"

// Repository репозиторий процентов комиссии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комиссий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert задает процент барбера для услуги, перезаписывая предыдущее значение
func (r *Repository) Upsert(ctx context.Context, commission *domain.Commission) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("barber_id", "service_id", "percentage").
		Values(commission.BarberID, commission.ServiceID, commission.Percentage).
		Suffix("ON CONFLICT (barber_id, service_id) DO UPDATE SET percentage = EXCLUDED.percentage, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByBarber получает все проценты барбера
func (r *Repository) GetByBarber(ctx context.Context, barberID int64) ([]*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("barber_id", "service_id", "percentage").
		From(table).
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarber - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarber - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	commissions := make([]*domain.Commission, 0)
	for rows.Next() {
		var c domain.Commission
		if err := rows.Scan(&c.BarberID, &c.ServiceID, &c.Percentage); err != nil {
			return nil, fmt.Errorf("%w: GetByBarber - scan row: %w", ErrScanRow, err)
		}
		commissions = append(commissions, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBarber - rows error: %w", ErrScanRow, err)
	}

	return commissions, nil
}
