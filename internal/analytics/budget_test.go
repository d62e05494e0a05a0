package analytics

import (
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		want       Status
		percentage float64
	}{
		{StatusSafe, 0},
		{StatusSafe, 74.999},
		{StatusWarning, 75.0},
		{StatusWarning, 89.999},
		{StatusDanger, 90.0},
		{StatusDanger, 99.99},
		{StatusExceeded, 100.0},
		{StatusExceeded, 250},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestStatus_Severity(t *testing.T) {
	assert.Less(t, StatusSafe.Severity(), StatusWarning.Severity())
	assert.Less(t, StatusWarning.Severity(), StatusDanger.Severity())
	assert.Less(t, StatusDanger.Severity(), StatusExceeded.Severity())
}

func TestBudgetStatuses(t *testing.T) {
	expenses := []model.Expense{
		expense(600, "2024-03-02", "Bills"),
		expense(150, "2024-03-05", "Food"),
		expense(200, "2024-03-09", "food"),
		expense(500, "2024-02-20", "Food"),
	}
	budgets := []model.Budget{
		{ID: "food", Scope: model.CategoryScope("Food"), Amount: 200, Period: model.PeriodMonthly},
		{ID: "weekly", Scope: model.OverallScope(), Amount: 10, Period: model.PeriodWeekly},
		{ID: "overall", Scope: model.OverallScope(), Amount: 1000, Period: model.PeriodMonthly},
		{ID: "zero", Scope: model.CategoryScope("Bills"), Amount: 0, Period: model.PeriodMonthly},
	}

	statuses := BudgetStatuses(expenses, budgets, day("2024-03-15"))
	require.Len(t, statuses, 3)

	assert.Equal(t, "food", statuses[0].BudgetID)
	assert.Equal(t, 150.0, statuses[0].Spent)
	assert.Equal(t, 75.0, statuses[0].Percentage)
	assert.Equal(t, StatusWarning, statuses[0].Status)

	assert.Equal(t, "overall", statuses[1].BudgetID)
	assert.True(t, statuses[1].Scope.IsOverall())
	assert.Equal(t, 950.0, statuses[1].Spent)
	assert.Equal(t, 95.0, statuses[1].Percentage)
	assert.Equal(t, StatusDanger, statuses[1].Status)

	assert.Equal(t, "zero", statuses[2].BudgetID)
	assert.Equal(t, 600.0, statuses[2].Spent)
	assert.Equal(t, 0.0, statuses[2].Percentage)
	assert.Equal(t, StatusSafe, statuses[2].Status)
}

func TestBudgetStatuses_Exceeded(t *testing.T) {
	expenses := []model.Expense{expense(1000, "2024-03-02", "Food")}
	budgets := []model.Budget{{ID: "b", Scope: model.OverallScope(), Amount: 1000, Period: model.PeriodMonthly}}

	statuses := BudgetStatuses(expenses, budgets, day("2024-03-02"))
	require.Len(t, statuses, 1)
	assert.Equal(t, 100.0, statuses[0].Percentage)
	assert.Equal(t, StatusExceeded, statuses[0].Status)
}

func TestOverallStatusAndAlerts(t *testing.T) {
	statuses := []BudgetStatus{
		{BudgetID: "a", Scope: model.CategoryScope("Food"), Status: StatusSafe},
		{BudgetID: "b", Scope: model.OverallScope(), Status: StatusDanger},
		{BudgetID: "c", Scope: model.OverallScope(), Status: StatusWarning},
	}

	overall, ok := OverallStatus(statuses)
	require.True(t, ok)
	assert.Equal(t, "b", overall.BudgetID)

	_, ok = OverallStatus(statuses[:1])
	assert.False(t, ok)

	alerts := Alerts(statuses)
	require.Len(t, alerts, 2)
	assert.Equal(t, "b", alerts[0].BudgetID)
	assert.Equal(t, "c", alerts[1].BudgetID)
}
