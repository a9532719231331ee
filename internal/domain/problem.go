package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/leetle.net/internal/static/errs"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty falls back to Medium for anything unrecognised
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyHard:
		return Difficulty(s)
	default:
		return DifficultyMedium
	}
}

// TestCase is one hidden (stdin, expected stdout) pair
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"output"`
}

// storedTestCase tells a missing key apart from an empty string
type storedTestCase struct {
	Input  *string `json:"input"`
	Output *string `json:"output"`
}

// ParseTestCases decodes the stored JSON array of {"input","output"} objects.
// Every element must carry both keys as strings.
func ParseTestCases(raw []byte) ([]TestCase, error) {
	var stored []*storedTestCase
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.MalformedTestCase, err)
	}

	cases := make([]TestCase, 0, len(stored))
	for i, tc := range stored {
		switch {
		case tc == nil:
			return nil, fmt.Errorf("%w: case %d is null", errs.MalformedTestCase, i)
		case tc.Input == nil:
			return nil, fmt.Errorf("%w: case %d has no input", errs.MalformedTestCase, i)
		case tc.Output == nil:
			return nil, fmt.Errorf("%w: case %d has no output", errs.MalformedTestCase, i)
		}
		cases = append(cases, TestCase{Input: *tc.Input, ExpectedOutput: *tc.Output})
	}
	return cases, nil
}

// EncodeTestCases is the inverse of ParseTestCases
func EncodeTestCases(cases []TestCase) ([]byte, error) {
	if cases == nil {
		cases = []TestCase{}
	}
	return json.Marshal(cases)
}

// Problem represents a daily challenge
type Problem struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	InputExample  string     `json:"input_example"`
	OutputExample string     `json:"output_example"`
	TestCases     []TestCase `json:"test_cases"`
	HintText      *string    `json:"hint_text,omitempty"`
	FullSolution  *string    `json:"full_solution,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Gradable reports whether the problem carries at least one test case
func (p *Problem) Gradable() error {
	if len(p.TestCases) == 0 {
		return fmt.Errorf("%w: problem %d", errs.NoTestCases, p.ID)
	}
	return nil
}

// ProblemView is the public projection of a Problem, without test cases or solutions
type ProblemView struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	InputExample  string     `json:"input_example"`
	OutputExample string     `json:"output_example"`
}

func (p *Problem) View() ProblemView {
	return ProblemView{
		Title:         p.Title,
		Description:   p.Description,
		Difficulty:    p.Difficulty,
		InputExample:  p.InputExample,
		OutputExample: p.OutputExample,
	}
}

type ProblemTable struct {
	ID            string
	Title         string
	Description   string
	Difficulty    string
	InputExample  string
	OutputExample string
	TestCases     string
	HintText      string
	FullSolution  string
	CreatedAt     string
	IsActive      string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:            "id",
		Title:         "title",
		Description:   "description",
		Difficulty:    "difficulty",
		InputExample:  "input_example",
		OutputExample: "output_example",
		TestCases:     "test_cases",
		HintText:      "hint_text",
		FullSolution:  "full_solution",
		CreatedAt:     "created_at",
		IsActive:      "is_active",
	}
}

func (ProblemTable) TableName() string {
	return "problem"
}
