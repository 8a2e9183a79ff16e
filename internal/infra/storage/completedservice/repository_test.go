package completedservice

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
)

var errNoDB = errors.New("no database")

// recordingExecutor запоминает последний запрос и не ходит в БД
type recordingExecutor struct {
	query    string
	args     []interface{}
	affected int64
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return driver.RowsAffected(e.affected), nil
}

func (e *recordingExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query, e.args = query, args
	return nil, errNoDB
}

func (e *recordingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	panic("QueryRowContext is not supported")
}

type recordingTx struct {
	recordingExecutor
}

func (t *recordingTx) Commit() error   { return nil }
func (t *recordingTx) Rollback() error { return nil }

func TestListUnsettled_OnlyValidatedWithoutPayment(t *testing.T) {
	before := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	exec := &recordingExecutor{}

	_, err := NewRepository(exec).ListUnsettled(context.Background(), 7, before)

	require.ErrorIs(t, err, ErrExecQuery)
	assert.Contains(t, exec.query,
		"FROM completed_services WHERE barber_id = $1 AND payment_id IS NULL AND validated_by_admin = $2 AND date < $3")
	assert.True(t, strings.HasSuffix(exec.query, "ORDER BY date ASC, id ASC"), exec.query)
	assert.NotContains(t, exec.query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(7), true, before}, exec.args)
}

func TestListUnsettled_LocksRowsInTransaction(t *testing.T) {
	tx := &recordingTx{}
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err := NewRepository(&recordingExecutor{}).ListUnsettled(ctx, 7, time.Now())

	require.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, strings.HasSuffix(tx.query, "ORDER BY date ASC, id ASC FOR UPDATE"), tx.query)
}

func TestClaimForPayment_SkipsAlreadyClaimedRows(t *testing.T) {
	exec := &recordingExecutor{affected: 2}

	claimed, err := NewRepository(exec).ClaimForPayment(context.Background(), []int64{3, 4}, 9)

	require.NoError(t, err)
	assert.Equal(t, int64(2), claimed)
	assert.Equal(t, "UPDATE completed_services SET payment_id = $1 WHERE id IN ($2,$3) AND payment_id IS NULL", exec.query)
	assert.Equal(t, []interface{}{int64(9), int64(3), int64(4)}, exec.args)
}

func TestClaimForPayment_EmptyIDs(t *testing.T) {
	exec := &recordingExecutor{}

	claimed, err := NewRepository(exec).ClaimForPayment(context.Background(), nil, 9)

	require.NoError(t, err)
	assert.Zero(t, claimed)
	assert.Empty(t, exec.query)
}

func TestMarkValidatedQuery_OnlyUnvalidatedRow(t *testing.T) {
	query, args, err := markValidatedQuery(3).ToSql()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query,
		"UPDATE completed_services SET validated_by_admin = $1, validated_at = NOW() WHERE id = $2 AND validated_by_admin = $3 RETURNING "), query)
	assert.Equal(t, []interface{}{true, int64(3), false}, args)
}
