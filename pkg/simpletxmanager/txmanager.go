package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

// sqlDB адаптирует *sql.DB к txmanager.TxBeginner
type sqlDB struct {
	db *sql.DB
}

func (s sqlDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return dbmetrics.SqlTxWrapper{Tx: tx}, nil
}

// NewTransactionManager создает менеджер транзакций поверх *sql.DB без метрик
// Используется, когда метрики выключены в конфигурации
func NewTransactionManager(db *sql.DB, opts ...txmanager.Option) *txmanager.TransactionManager {
	return txmanager.New(sqlDB{db: db}, nil, opts...)
}
