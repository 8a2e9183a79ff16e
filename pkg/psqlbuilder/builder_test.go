package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("appointments").
		Where(squirrel.Eq{"barber_id": int64(7)}).
		Where(squirrel.Eq{"status": "pending"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM appointments WHERE barber_id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{int64(7), "pending"}, args)
}

func TestUpdate_ConditionalStatus(t *testing.T) {
	query, args, err := Update("appointments").
		Set("status", "completed").
		Where(squirrel.Eq{"id": int64(1), "status": "pending"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE appointments SET status = $1 WHERE id = $2 AND status = $3", query)
	assert.Equal(t, []interface{}{"completed", int64(1), "pending"}, args)
}
