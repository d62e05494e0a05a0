package model

import (
	"encoding/json"
	"fmt"
)

// BudgetPeriod is the window a budget amount applies to.
type BudgetPeriod string

// Budget periods.
const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodWeekly  BudgetPeriod = "weekly"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	return p == PeriodMonthly || p == PeriodWeekly
}

// ParseBudgetPeriod converts user input into a BudgetPeriod.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	p := BudgetPeriod(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown budget period %q (want %s or %s)", s, PeriodMonthly, PeriodWeekly)
	}
	return p, nil
}

// BudgetScope says what spending a budget covers: either everything
// (overall) or a single category name. The zero value is the overall scope.
type BudgetScope struct {
	category string
	specific bool
}

// OverallScope covers total spend across all categories.
func OverallScope() BudgetScope {
	return BudgetScope{}
}

// CategoryScope covers spend in the named category only.
func CategoryScope(name string) BudgetScope {
	return BudgetScope{category: name, specific: true}
}

// IsOverall reports whether the scope covers all categories.
func (s BudgetScope) IsOverall() bool {
	return !s.specific
}

// Category returns the category name of a per-category scope.
func (s BudgetScope) Category() (string, bool) {
	return s.category, s.specific
}

// Matches reports whether an expense counts against the scope. Category
// names are compared exactly.
func (s BudgetScope) Matches(e Expense) bool {
	return !s.specific || e.Category == s.category
}

// String returns "overall" or the category name.
func (s BudgetScope) String() string {
	if !s.specific {
		return "overall"
	}
	return s.category
}

// MarshalJSON encodes the overall scope as null and a category scope as its name.
func (s BudgetScope) MarshalJSON() ([]byte, error) {
	if !s.specific {
		return []byte("null"), nil
	}
	return json.Marshal(s.category)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *BudgetScope) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = OverallScope()
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("budget category must be a string or null: %w", err)
	}
	*s = CategoryScope(name)
	return nil
}

// Budget is a spending threshold for a scope over a period.
type Budget struct {
	ID     string       `json:"id"`
	Period BudgetPeriod `json:"period"`
	Scope  BudgetScope  `json:"category"`
	Amount float64      `json:"amount"`
}
