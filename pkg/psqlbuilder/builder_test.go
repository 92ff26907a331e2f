package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("booked_slots").
		Where(squirrel.Eq{"meeting_id": 7}).
		Where(squirrel.NotEq{"status": "cancelled"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM booked_slots WHERE meeting_id = $1 AND status <> $2", query)
	assert.Equal(t, []interface{}{7, "cancelled"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("booked_slots").
		Set("status", "completed").
		Where(squirrel.Eq{"id": int64(3)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE booked_slots SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
