package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
)

const (
	// DefaultMaxRetries количество повторов транзакции после serialization failure
	DefaultMaxRetries = 3

	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner источник транзакций (*dbmetrics.DB или адаптер над *sql.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
// Вложенный вызов присоединяется к уже открытой транзакции
type TransactionManager struct {
	db         TxBeginner
	metrics    *metrics.Metrics
	maxRetries int
	backoff    time.Duration
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithMaxRetries задает количество повторов при конфликте сериализации
func WithMaxRetries(n int) Option {
	return func(tm *TransactionManager) {
		if n >= 0 {
			tm.maxRetries = n
		}
	}
}

// WithBackoff задает базовую паузу между повторами
func WithBackoff(d time.Duration) Option {
	return func(tm *TransactionManager) {
		tm.backoff = d
	}
}

// NewTransactionManager создает менеджер транзакций поверх инструментированной БД
func NewTransactionManager(db *dbmetrics.DB, opts ...Option) *TransactionManager {
	return New(db, db.Metrics(), opts...)
}

// New создает менеджер транзакций поверх произвольного источника транзакций
func New(db TxBeginner, m *metrics.Metrics, opts ...Option) *TransactionManager {
	tm := &TransactionManager{
		db:         db,
		metrics:    m,
		maxRetries: DefaultMaxRetries,
		backoff:    20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Do выполняет fn в транзакции READ COMMITTED
func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При serialization failure или deadlock транзакция повторяется целиком
func (tm *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (tm *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (tm *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Уже внутри транзакции - просто присоединяемся
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt <= tm.maxRetries; attempt++ {
		if attempt > 0 {
			tm.metrics.IncTxRetry(opts.Isolation.String())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(tm.backoff * time.Duration(attempt)):
			}
		}

		err = tm.once(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}

func (tm *TransactionManager) once(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := tm.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

// IsRetryable возвращает true для ошибок PostgreSQL, после которых транзакцию можно повторить
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
}
