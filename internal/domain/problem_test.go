package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/domain"
	"gitlab.com/leetle.net/internal/static/errs"
)

func TestParseTestCases_KeepsEmbeddedNewlines(t *testing.T) {
	raw := []byte(`[{"input":"[2,7,11,15]\n9","output":"[0,1]"},{"input":"121","output":"true"}]`)

	cases, err := domain.ParseTestCases(raw)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "[2,7,11,15]\n9", cases[0].Input)
	assert.Equal(t, "[0,1]", cases[0].ExpectedOutput)

	encoded, err := domain.EncodeTestCases(cases)
	require.NoError(t, err)
	again, err := domain.ParseTestCases(encoded)
	require.NoError(t, err)
	assert.Equal(t, cases, again)
}

func TestParseTestCases_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not an array", raw: `{"input":"1"}`},
		{name: "missing output", raw: `[{"input":"5"}]`},
		{name: "missing input", raw: `[{"output":"5"}]`},
		{name: "null element", raw: `[{"input":"1","output":"1"}, null]`},
		{name: "null output", raw: `[{"input":"1","output":null}]`},
		{name: "numeric output", raw: `[{"input":"1","output":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := domain.ParseTestCases([]byte(tt.raw))
			assert.ErrorIs(t, err, errs.MalformedTestCase)
			assert.Nil(t, cases)
		})
	}
}

func TestParseTestCases_EmptyStringsArePresent(t *testing.T) {
	cases, err := domain.ParseTestCases([]byte(`[{"input":"","output":""}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.TestCase{{}}, cases)
}

func TestEncodeTestCases_NilIsEmptyArray(t *testing.T) {
	raw, err := domain.EncodeTestCases(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, domain.DifficultyEasy, domain.ParseDifficulty("Easy"))
	assert.Equal(t, domain.DifficultyHard, domain.ParseDifficulty("Hard"))
	assert.Equal(t, domain.DifficultyMedium, domain.ParseDifficulty("Medium"))
	assert.Equal(t, domain.DifficultyMedium, domain.ParseDifficulty(""))
	assert.Equal(t, domain.DifficultyMedium, domain.ParseDifficulty("easy"))
}

func TestProblem_ViewHidesHiddenFields(t *testing.T) {
	hint := "use a map"
	p := &domain.Problem{
		ID:            3,
		Title:         "Two Sum",
		Description:   "find two indices",
		Difficulty:    domain.DifficultyEasy,
		InputExample:  "[2,7,11,15]\n9",
		OutputExample: "[0,1]",
		TestCases:     []domain.TestCase{{Input: "x", ExpectedOutput: "y"}},
		HintText:      &hint,
	}

	assert.Equal(t, domain.ProblemView{
		Title:         "Two Sum",
		Description:   "find two indices",
		Difficulty:    domain.DifficultyEasy,
		InputExample:  "[2,7,11,15]\n9",
		OutputExample: "[0,1]",
	}, p.View())
	assert.NoError(t, p.Gradable())
}

func TestProblem_GradableRequiresCases(t *testing.T) {
	p := &domain.Problem{ID: 9}
	assert.ErrorIs(t, p.Gradable(), errs.NoTestCases)
}
