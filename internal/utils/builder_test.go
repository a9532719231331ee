package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	assert.Equal(t, "problem", NewQueryBuilder("").Table("problem"))
	assert.Equal(t, "leetle.problem", NewQueryBuilder("leetle").Table("problem"))
}

func TestSelectUsesDollarPlaceholders(t *testing.T) {
	qb := NewQueryBuilder("")
	query, args, err := qb.Select("id").From(qb.Table("problem")).
		Where("is_active = ?", true).
		Where("id > ?", 3).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM problem WHERE is_active = $1 AND id > $2", query)
	assert.Equal(t, []interface{}{true, 3}, args)
}

func TestOnConflict(t *testing.T) {
	assert.Equal(t,
		"ON CONFLICT (user_id) DO UPDATE SET total_attempts = EXCLUDED.total_attempts, success_rate = EXCLUDED.success_rate",
		OnConflictUpdate([]string{"user_id"}, "total_attempts", "success_rate"))
	assert.Equal(t,
		"ON CONFLICT (user_id, achievement_id) DO NOTHING",
		OnConflictDoNothing("user_id", "achievement_id"))
}
