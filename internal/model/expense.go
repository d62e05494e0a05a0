// Package model defines the core domain models used throughout the application.
package model

import "time"

// Expense is a single recorded spending event.
type Expense struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	Category  string    `json:"category"` // Category name, matched by value
	Note      string    `json:"note,omitempty"`
	Date      Date      `json:"date"`
	Amount    float64   `json:"amount"`
}

// ExpenseUpdate holds the fields to change on an existing expense. Nil fields
// are left as they are.
type ExpenseUpdate struct {
	Amount   *float64
	Category *string
	Note     *string
	Date     *Date
}

// IsEmpty reports whether the update changes nothing.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Category == nil && u.Note == nil && u.Date == nil
}

// Apply merges the update into e and returns the result.
func (u ExpenseUpdate) Apply(e Expense) Expense {
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Note != nil {
		e.Note = *u.Note
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	return e
}
