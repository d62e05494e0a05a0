package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/model"
)

// ExpenseBuilder provides a fluent interface for constructing expense
// fixtures within one month.
type ExpenseBuilder struct {
	t        *testing.T
	month    model.Date
	expenses []model.Expense
}

// NewExpenses starts a builder for the current month.
func NewExpenses(t *testing.T) *ExpenseBuilder {
	t.Helper()
	return &ExpenseBuilder{t: t, month: model.Today().FirstOfMonth()}
}

// In switches the month that later days refer to. The month is given as
// YYYY-MM.
func (b *ExpenseBuilder) In(month string) *ExpenseBuilder {
	b.t.Helper()
	d, err := model.ParseDate(month + "-01")
	if err != nil {
		b.t.Fatalf("invalid fixture month %q: %v", month, err)
	}
	b.month = d
	return b
}

// Add appends an expense on the given day of the current month.
func (b *ExpenseBuilder) Add(amount float64, category string, day int) *ExpenseBuilder {
	b.t.Helper()
	if day < 1 || day > b.month.DaysInMonth() {
		b.t.Fatalf("day %d is outside %s", day, b.month.String()[:7])
	}
	date := model.NewDate(b.month.Year, b.month.Month, day)
	b.expenses = append(b.expenses, model.Expense{
		ID:        fmt.Sprintf("fixture-%d", len(b.expenses)+1),
		Amount:    amount,
		Category:  category,
		Date:      date,
		CreatedAt: date.In(time.UTC),
	})
	return b
}

// AddNote is Add with a note.
func (b *ExpenseBuilder) AddNote(amount float64, category string, day int, note string) *ExpenseBuilder {
	b.t.Helper()
	b.Add(amount, category, day)
	b.expenses[len(b.expenses)-1].Note = note
	return b
}

// Build returns the expenses in the order they were added.
func (b *ExpenseBuilder) Build() []model.Expense {
	out := make([]model.Expense, len(b.expenses))
	copy(out, b.expenses)
	return out
}
