package viewmodel

import (
	"testing"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(id string, amount float64, category, date string) model.Expense {
	return model.Expense{
		ID:       id,
		Amount:   amount,
		Category: category,
		Date:     model.MustParseDate(date),
	}
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		// Newest first, the way the store lists them.
		Expenses: []model.Expense{
			expense("5", 30, "Mystery", "2024-03-12"),
			expense("4", 300, "Food", "2024-03-10"),
			expense("3", 50, "Transport", "2024-03-02"),
			expense("2", 100, "Food", "2024-03-01"),
			expense("1", 240, "Food", "2024-02-05"),
		},
		Categories: model.DefaultCategories,
		Budgets: []model.Budget{
			{ID: "b1", Scope: model.OverallScope(), Amount: 1000, Period: model.PeriodMonthly},
			{ID: "b2", Scope: model.CategoryScope("Food"), Amount: 400, Period: model.PeriodMonthly},
			{ID: "b3", Scope: model.CategoryScope("Transport"), Amount: 100, Period: model.PeriodWeekly},
		},
		Settings: model.DefaultSettings,
	}
}

func TestBuild_Home(t *testing.T) {
	d := Build(testSnapshot(), model.MustParseDate("2024-03-15"), Options{})

	assert.Equal(t, "₹", d.Symbol)
	assert.InDelta(t, 480, d.Home.Comparison.Current, 1e-9)
	assert.InDelta(t, 240, d.Home.Comparison.Previous, 1e-9)
	assert.InDelta(t, 100, d.Home.Comparison.ChangePercent, 1e-9)
	assert.InDelta(t, 330, d.Home.WeekTotal, 1e-9)
	assert.InDelta(t, 32, d.Home.DailyAverage, 1e-9)
	assert.InDelta(t, 992, d.Home.Projection, 1e-9)
	assert.InDelta(t, 300, d.Home.MaxDaily, 1e-9)
	assert.Len(t, d.Home.Daily, 31)

	require.Len(t, d.Home.Recent, 5)
	assert.Equal(t, "5", d.Home.Recent[0].Expense.ID)
	assert.Equal(t, model.UnknownCategoryIcon, d.Home.Recent[0].Category.Icon)
	assert.Equal(t, "🍔", d.Home.Recent[1].Category.Icon)
}

func TestBuild_RecentLimit(t *testing.T) {
	d := Build(testSnapshot(), model.MustParseDate("2024-03-15"), Options{RecentLimit: 2})

	require.Len(t, d.Home.Recent, 2)
	assert.Equal(t, "4", d.Home.Recent[1].Expense.ID)
}

func TestBuild_Analytics(t *testing.T) {
	d := Build(testSnapshot(), model.MustParseDate("2024-03-15"), Options{})

	require.Len(t, d.Analytics.Breakdown, 3)
	assert.Equal(t, "Food", d.Analytics.Breakdown[0].Category.Name)
	assert.InDelta(t, 400, d.Analytics.Breakdown[0].Amount, 1e-9)
	assert.Equal(t, "Mystery", d.Analytics.Breakdown[2].Category.Name)
	assert.Equal(t, model.UnknownCategoryColor, d.Analytics.Breakdown[2].Category.Color)
	assert.Equal(t, 16, d.Analytics.DaysRemaining)

	// 300 on the 10th is above twice the active-day mean of 120.
	require.Len(t, d.Analytics.Spikes, 1)
	assert.Equal(t, 10, d.Analytics.Spikes[0].Date.Day)

	texts := analytics.Texts(d.Analytics.Insights)
	assert.Contains(t, texts, "You spent 100% more this month compared to last month")
	assert.Contains(t, texts, "Your average daily spending is ₹32")
}

func TestBuild_Budget(t *testing.T) {
	d := Build(testSnapshot(), model.MustParseDate("2024-03-15"), Options{})

	require.NotNil(t, d.Budget.Overall)
	assert.Equal(t, analytics.StatusSafe, d.Budget.Overall.Status)
	assert.InDelta(t, 48, d.Budget.Overall.Percentage, 1e-9)

	require.Len(t, d.Budget.Categories, 1)
	assert.Equal(t, "Food", d.Budget.Categories[0].Category.Name)
	assert.Equal(t, analytics.StatusExceeded, d.Budget.Categories[0].Status)

	require.Len(t, d.Budget.Weekly, 1)
	assert.Equal(t, "b3", d.Budget.Weekly[0].ID)

	assert.True(t, d.Budget.HasBudgets())
	alerts := d.Budget.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "b2", alerts[0].BudgetID)
}

func TestBuild_Empty(t *testing.T) {
	d := Build(model.Snapshot{}, model.MustParseDate("2024-02-10"), Options{})

	assert.Equal(t, model.DefaultSettings.CurrencySymbol, d.Symbol)
	assert.Empty(t, d.Home.Recent)
	assert.Len(t, d.Home.Daily, 29)
	assert.Zero(t, d.Home.MaxDaily)
	assert.Empty(t, d.Analytics.Breakdown)
	assert.Empty(t, d.Analytics.Insights)
	assert.False(t, d.Budget.HasBudgets())
	assert.Empty(t, d.Budget.Alerts())
}
