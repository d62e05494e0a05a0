// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/spent/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Expense operations
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	ListExpensesInMonth(ctx context.Context, ref model.Date) ([]model.Expense, error)
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	AddExpense(ctx context.Context, expense *model.Expense) error
	AddExpenses(ctx context.Context, expenses []model.Expense) error
	UpdateExpense(ctx context.Context, id string, update model.ExpenseUpdate) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// Category operations
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, id string, update model.CategoryUpdate) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Budget operations
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	SetBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, id string) error

	// Settings operations
	GetSettings(ctx context.Context) (model.Settings, error)
	UpdateSettings(ctx context.Context, update model.SettingsUpdate) (model.Settings, error)

	// Whole-store operations
	Snapshot(ctx context.Context) (*model.Snapshot, error)
	ClearAll(ctx context.Context) error
	Export(ctx context.Context, now time.Time) ([]byte, error)
	Import(ctx context.Context, data []byte) (ImportSummary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ImportSummary reports which buckets an import replaced. A nil count means
// the bucket was absent from the document and left untouched.
type ImportSummary struct {
	Expenses   *int
	Categories *int
	Budgets    *int
	Settings   bool
}

// Replaced reports whether the import changed anything.
func (s ImportSummary) Replaced() bool {
	return s.Expenses != nil || s.Categories != nil || s.Budgets != nil || s.Settings
}
