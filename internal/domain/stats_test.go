package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/domain"
)

func TestCriteria_Met(t *testing.T) {
	progress := domain.UserProgress{CurrentStreak: 3, TotalSolutions: 10, SuccessRate: 80}

	tests := []struct {
		name     string
		criteria string
		want     bool
	}{
		{"empty criteria always met", `{}`, true},
		{"streak reached", `{"min_streak":3}`, true},
		{"streak short", `{"min_streak":7}`, false},
		{"solutions reached", `{"total_solutions":10}`, true},
		{"rate short", `{"success_rate":90}`, false},
		{"all reached", `{"min_streak":1,"total_solutions":5,"success_rate":75.5}`, true},
		{"one of several short", `{"min_streak":1,"total_solutions":50}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := domain.ParseCriteria(tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Met(progress))
		})
	}
}

func TestParseCriteria_Malformed(t *testing.T) {
	_, err := domain.ParseCriteria(`{"min_streak":"many"}`)
	assert.Error(t, err)
}
