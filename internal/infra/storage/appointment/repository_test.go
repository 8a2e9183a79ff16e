package appointment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

func TestUpdateStatusIfQuery_ChecksCurrentStatus(t *testing.T) {
	query, args, err := updateStatusIfQuery(12, domain.StatusConfirmed, domain.StatusCompleted).ToSql()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query,
		"UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3 RETURNING "), query)
	assert.True(t, strings.HasSuffix(query, "RETURNING "+strings.Join(columns, ", ")), query)
	assert.Equal(t, []interface{}{domain.StatusCompleted, int64(12), domain.StatusConfirmed}, args)
}
