package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetScope(t *testing.T) {
	overall := OverallScope()
	food := CategoryScope("Food")

	assert.True(t, overall.IsOverall())
	assert.False(t, food.IsOverall())

	name, ok := food.Category()
	assert.True(t, ok)
	assert.Equal(t, "Food", name)

	_, ok = overall.Category()
	assert.False(t, ok)

	assert.True(t, overall.Matches(Expense{Category: "Anything"}))
	assert.True(t, food.Matches(Expense{Category: "Food"}))
	assert.False(t, food.Matches(Expense{Category: "food"}))
	assert.Equal(t, BudgetScope{}, overall)
}

func TestBudget_JSON(t *testing.T) {
	budgets := []Budget{
		{ID: "a", Scope: OverallScope(), Amount: 1000, Period: PeriodMonthly},
		{ID: "b", Scope: CategoryScope("Food"), Amount: 200, Period: PeriodWeekly},
	}

	data, err := json.Marshal(budgets)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"a","category":null,"amount":1000,"period":"monthly"},
		{"id":"b","category":"Food","amount":200,"period":"weekly"}
	]`, string(data))

	var decoded []Budget
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, budgets, decoded)
}

func TestParseBudgetPeriod(t *testing.T) {
	p, err := ParseBudgetPeriod("weekly")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	_, err = ParseBudgetPeriod("yearly")
	assert.Error(t, err)
}
