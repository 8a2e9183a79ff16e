package productsale

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

const table = "product_sales"

var columns = []string{
	"id",
	"barber_id",
	"product_name",
	"quantity",
	"unit_price",
	"commission_percent",
	"date",
	"validated_by_admin",
	"validated_at",
	"payment_id",
	"created_at",
}

// Repository репозиторий продаж товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория продаж
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает продажу товара
func (r *Repository) Create(ctx context.Context, sale *domain.ProductSale) (*domain.ProductSale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"barber_id",
			"product_name",
			"quantity",
			"unit_price",
			"commission_percent",
			"date",
		).
		Values(
			sale.BarberID,
			sale.ProductName,
			sale.Quantity,
			sale.UnitPrice,
			sale.CommissionPercent,
			sale.Date,
		).
		Suffix("RETURNING id, validated_by_admin, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sale.ID,
		&sale.ValidatedByAdmin,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	sale.CreatedAt = createdAt.Time

	return sale, nil
}

// GetByID получает продажу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ProductSale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	sale, err := scanProductSale(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product sale: %w", ErrScanRow, err)
	}

	return sale, nil
}

// List получает продажи барбера за период
func (r *Repository) List(ctx context.Context, filter domain.RecordFilter) ([]*domain.ProductSale, error) {
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

// ListUnsettled получает подтвержденные и еще не оплаченные продажи барбера с датой раньше before
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListUnsettled(ctx context.Context, barberID int64, before time.Time) ([]*domain.ProductSale, error) {
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
// Повторный вызов вернет ErrNotUpdated
func (r *Repository) MarkValidated(ctx context.Context, id int64) (*domain.ProductSale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := markValidatedQuery(id).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkValidated - build update query: %w", ErrBuildQuery, err)
	}

	sale, err := scanProductSale(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotUpdated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MarkValidated - execute update: %w", ErrExecQuery, err)
	}

	return sale, nil
}

// markValidatedQuery строит условное обновление: затрагивает только неподтвержденную строку
func markValidatedQuery(id int64) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("validated_by_admin", true).
		Set("validated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "validated_by_admin": false}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
}

// ClaimForPayment привязывает продажи к выплате, возвращает количество привязанных строк
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

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.ProductSale, error) {
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

	result := make([]*domain.ProductSale, 0)
	for rows.Next() {
		sale, err := scanProductSale(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductSale(row rowScanner) (*domain.ProductSale, error) {
	var sale domain.ProductSale
	var createdAt sql.NullTime

	err := row.Scan(
		&sale.ID,
		&sale.BarberID,
		&sale.ProductName,
		&sale.Quantity,
		&sale.UnitPrice,
		&sale.CommissionPercent,
		&sale.Date,
		&sale.ValidatedByAdmin,
		&sale.ValidatedAt,
		&sale.PaymentID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sale.CreatedAt = createdAt.Time

	return &sale, nil
}
