package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T, store *SQLiteStorage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.AddExpense(ctx, newExpense(120, "Food", "2024-03-02")))
	require.NoError(t, store.AddExpense(ctx, newExpense(45.5, "Transport", "2024-03-05")))
	require.NoError(t, store.SetBudget(ctx, &model.Budget{
		Scope:  model.OverallScope(),
		Amount: 5000,
		Period: model.PeriodMonthly,
	}))
}

func TestExport(t *testing.T) {
	store := createTestStorage(t)
	seedStore(t, store)

	exportedAt := time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC)
	data, err := store.Export(context.Background(), exportedAt)
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"expenses\": [")
	assert.Contains(t, string(data), `"exportedAt": "2024-03-20T18:00:00Z"`)
	assert.Contains(t, string(data), `"category": null`)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Expenses, 2)
	assert.Equal(t, "Transport", doc.Expenses[0].Category)
	assert.Len(t, doc.Categories, len(model.DefaultCategories))
	assert.Len(t, doc.Budgets, 1)
	assert.Equal(t, model.DefaultSettings, doc.Settings)
}

func TestExport_EmptyBucketsAreLists(t *testing.T) {
	store := createTestStorage(t)

	data, err := store.Export(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expenses": []`)
	assert.Contains(t, string(data), `"budgets": []`)
}

func TestExportImportRoundTrip(t *testing.T) {
	source := createTestStorage(t)
	seedStore(t, source)
	ctx := context.Background()

	data, err := source.Export(ctx, fixedNow)
	require.NoError(t, err)

	target := createTestStorage(t)
	summary, err := target.Import(ctx, data)
	require.NoError(t, err)
	require.NotNil(t, summary.Expenses)
	assert.Equal(t, 2, *summary.Expenses)
	assert.True(t, summary.Settings)

	want, err := source.Snapshot(ctx)
	require.NoError(t, err)
	got, err := target.Snapshot(ctx)
	require.NoError(t, err)

	require.Len(t, got.Expenses, len(want.Expenses))
	for i := range want.Expenses {
		assert.Equal(t, want.Expenses[i].ID, got.Expenses[i].ID)
		assert.Equal(t, want.Expenses[i].Amount, got.Expenses[i].Amount)
		assert.Equal(t, want.Expenses[i].Date, got.Expenses[i].Date)
		assert.True(t, want.Expenses[i].CreatedAt.Equal(got.Expenses[i].CreatedAt))
	}
	assert.Equal(t, want.Categories, got.Categories)
	assert.Equal(t, want.Budgets, got.Budgets)
	assert.Equal(t, want.Settings, got.Settings)
}

func TestImport_OnlyPresentBucketsReplaced(t *testing.T) {
	store := createTestStorage(t)
	seedStore(t, store)
	ctx := context.Background()

	doc := `{
		"expenses": [
			{"id": "a", "amount": 10, "category": "Food", "date": "2024-03-01", "createdAt": "2024-03-01T10:00:00Z"},
			{"id": "b", "amount": 20, "category": "Food", "date": "2024-03-02", "createdAt": "2024-03-02T10:00:00Z"}
		],
		"budgets": null
	}`

	summary, err := store.Import(ctx, []byte(doc))
	require.NoError(t, err)
	assert.Nil(t, summary.Categories)
	assert.Nil(t, summary.Budgets)
	assert.False(t, summary.Settings)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Expenses, 2)
	assert.Equal(t, "a", snap.Expenses[0].ID)
	assert.Equal(t, "b", snap.Expenses[1].ID)
	assert.Len(t, snap.Budgets, 1)
	assert.Len(t, snap.Categories, len(model.DefaultCategories))
}

func TestImport_PermissiveRecords(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := `{
		"expenses": [{"id": "x", "amount": -4, "category": "Nowhere", "date": "2024-03-01T23:15:00.000Z"}],
		"categories": [],
		"budgets": [{"id": "b1", "category": "Food", "amount": 50, "period": "weekly"}]
	}`

	_, err := store.Import(ctx, []byte(doc))
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Expenses, 1)
	assert.Equal(t, -4.0, snap.Expenses[0].Amount)
	assert.Equal(t, model.MustParseDate("2024-03-01"), snap.Expenses[0].Date)
	assert.True(t, snap.Expenses[0].CreatedAt.IsZero())
	assert.Empty(t, snap.Categories)
	require.Len(t, snap.Budgets, 1)
	assert.Equal(t, model.PeriodWeekly, snap.Budgets[0].Period)
}

func TestImport_CoercesRecordFields(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := `{
		"expenses": [
			{"id": "s", "amount": "12", "category": "Food", "date": "2024-03-01"},
			{"id": "d", "amount": 30, "category": "Food", "date": "March 1"},
			{"id": "n", "amount": "ten", "category": 7, "date": 20240301},
			"stray"
		],
		"budgets": [{"id": "b1", "category": null, "amount": "500", "period": "monthly"}],
		"settings": {"currency": "USD", "dailyReminder": "false"}
	}`

	summary, err := store.Import(ctx, []byte(doc))
	require.NoError(t, err)
	require.NotNil(t, summary.Expenses)
	assert.Equal(t, 3, *summary.Expenses)

	byID := make(map[string]model.Expense)
	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	for _, e := range expenses {
		byID[e.ID] = e
	}
	require.Len(t, byID, 3)

	assert.InDelta(t, 12, byID["s"].Amount, 0.001)
	assert.Equal(t, model.MustParseDate("2024-03-01"), byID["s"].Date)

	assert.InDelta(t, 30, byID["d"].Amount, 0.001)
	assert.True(t, byID["d"].Date.IsZero())

	assert.Zero(t, byID["n"].Amount)
	assert.Equal(t, "7", byID["n"].Category)
	assert.True(t, byID["n"].Date.IsZero())

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, model.OverallScope(), budgets[0].Scope)
	assert.InDelta(t, 500, budgets[0].Amount, 0.001)

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", settings.Currency)
	assert.False(t, settings.DailyReminder)
	assert.Equal(t, model.DefaultSettings.CurrencySymbol, settings.CurrencySymbol)
}

func TestImport_BucketThatIsNotAListIsKept(t *testing.T) {
	store := createTestStorage(t)
	seedStore(t, store)
	ctx := context.Background()

	before, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, before)

	summary, err := store.Import(ctx, []byte(`{"expenses": [], "budgets": "lots"}`))
	require.NoError(t, err)
	assert.Nil(t, summary.Budgets)
	require.NotNil(t, summary.Expenses)
	assert.Equal(t, 0, *summary.Expenses)

	after, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImport_InvalidDocumentLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `expenses: []`},
		{name: "truncated", doc: `{"expenses": [`},
		{name: "array", doc: `[]`},
		{name: "empty", doc: ``},
		{name: "null", doc: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			seedStore(t, store)
			ctx := context.Background()

			before, err := store.Snapshot(ctx)
			require.NoError(t, err)

			_, err = store.Import(ctx, []byte(tt.doc))
			assert.ErrorIs(t, err, common.ErrInvalidDocument)

			after, err := store.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestImport_SettingsFillMissingFieldsWithDefaults(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.Import(ctx, []byte(`{"settings": {"currency": "USD", "currencySymbol": "$"}}`))
	require.NoError(t, err)

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", settings.Currency)
	assert.Equal(t, "$", settings.CurrencySymbol)
	assert.Equal(t, model.ThemeDark, settings.Theme)
	assert.True(t, settings.BudgetAlerts)
}
