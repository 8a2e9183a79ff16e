package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExecutor struct {
	DBExecutor
	name string
}

type fakeTx struct {
	fakeExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &fakeExecutor{name: "db"}
	tx := &fakeTx{fakeExecutor{name: "tx"}}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestSqlTxWrapper_ImplementsTxExecutor(t *testing.T) {
	var _ TxExecutor = SqlTxWrapper{Tx: (*sql.Tx)(nil)}
}
