package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// UserStats holds the aggregate counters kept per user
type UserStats struct {
	UserID            int64     `db:"user_id"`
	TotalAttempts     int       `db:"total_attempts"`
	TotalCorrect      int       `db:"total_correct"`
	SuccessRate       float64   `db:"success_rate"`
	FavoriteLanguage  string    `db:"favorite_language"`
	ProblemsAttempted int       `db:"problems_attempted"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// UserStreak holds the streak columns stored on the user row
type UserStreak struct {
	UserID             int64      `db:"id"`
	CurrentStreak      int        `db:"current_streak"`
	LongestStreak      int        `db:"longest_streak"`
	TotalSolutions     int        `db:"total_solutions"`
	LastSubmissionDate *time.Time `db:"last_submission_date"`
}

// UserProgress is the view achievement criteria are evaluated against
type UserProgress struct {
	CurrentStreak  int
	TotalSolutions int
	SuccessRate    float64
}

// Criteria thresholds; a nil field is not checked
type Criteria struct {
	MinStreak      *int     `json:"min_streak,omitempty"`
	TotalSolutions *int     `json:"total_solutions,omitempty"`
	SuccessRate    *float64 `json:"success_rate,omitempty"`
}

func ParseCriteria(raw string) (Criteria, error) {
	var c Criteria
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Criteria{}, fmt.Errorf("failed to decode achievement criteria: %w", err)
	}
	return c, nil
}

// Met reports whether every configured threshold is reached
func (c Criteria) Met(p UserProgress) bool {
	if c.MinStreak != nil && p.CurrentStreak < *c.MinStreak {
		return false
	}
	if c.TotalSolutions != nil && p.TotalSolutions < *c.TotalSolutions {
		return false
	}
	if c.SuccessRate != nil && p.SuccessRate < *c.SuccessRate {
		return false
	}
	return true
}

type Achievement struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Criteria    string `db:"criteria"`
	Icon        string `db:"icon"`
	Points      int    `db:"points"`
	IsActive    bool   `db:"is_active"`
}
