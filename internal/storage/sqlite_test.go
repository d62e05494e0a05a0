package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	store.now = func() time.Time { return fixedNow }

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newExpense(amount float64, category, date string) *model.Expense {
	return &model.Expense{
		Amount:   amount,
		Category: category,
		Date:     model.MustParseDate(date),
	}
}

func TestNewSQLiteStorage_RejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "spent.db")
	ctx := context.Background()

	store, err := Open(ctx, dbPath)
	require.NoError(t, err)

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
	require.NoError(t, store.Close())

	// Reopening must not re-run migrations and reseed categories.
	store, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(model.DefaultCategories))
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, "PRAGMA user_version = 99")
	require.NoError(t, err)

	err = store.Migrate(ctx)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestInMemoryStorage(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.AddExpense(ctx, newExpense(10, "Food", "2024-03-01")))

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestSnapshot(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddExpense(ctx, newExpense(10, "Food", "2024-03-01")))
	require.NoError(t, store.SetBudget(ctx, &model.Budget{
		Scope:  model.OverallScope(),
		Amount: 500,
		Period: model.PeriodMonthly,
	}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, snap.Expenses, 1)
	assert.Len(t, snap.Categories, len(model.DefaultCategories))
	assert.Len(t, snap.Budgets, 1)
	assert.Equal(t, model.DefaultSettings, snap.Settings)
}

func TestClearAll(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddExpense(ctx, newExpense(10, "Food", "2024-03-01")))
	require.NoError(t, store.AddCategory(ctx, &model.Category{Name: "Pets", Icon: "🐶"}))
	require.NoError(t, store.SetBudget(ctx, &model.Budget{
		Scope:  model.CategoryScope("Food"),
		Amount: 100,
		Period: model.PeriodMonthly,
	}))
	currency := "USD"
	_, err := store.UpdateSettings(ctx, model.SettingsUpdate{Currency: &currency})
	require.NoError(t, err)

	require.NoError(t, store.ClearAll(ctx))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Expenses)
	assert.Empty(t, snap.Budgets)
	assert.Equal(t, model.DefaultCategories, snap.Categories)
	assert.Equal(t, model.DefaultSettings, snap.Settings)
}

func TestValidateContext(t *testing.T) {
	store := createTestStorage(t)

	//nolint:staticcheck // a nil context is the case under test
	_, err := store.ListExpenses(nil)
	assert.ErrorIs(t, err, ErrNilContext)
}
