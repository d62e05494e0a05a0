package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBudget_Upsert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	overall := &model.Budget{Scope: model.OverallScope(), Amount: 1000, Period: model.PeriodMonthly}
	require.NoError(t, store.SetBudget(ctx, overall))
	require.NotEmpty(t, overall.ID)

	food := &model.Budget{Scope: model.CategoryScope("Food"), Amount: 200, Period: model.PeriodMonthly}
	require.NoError(t, store.SetBudget(ctx, food))

	weekly := &model.Budget{Scope: model.OverallScope(), Amount: 250, Period: model.PeriodWeekly}
	require.NoError(t, store.SetBudget(ctx, weekly))

	replacement := &model.Budget{Scope: model.OverallScope(), Amount: 1500, Period: model.PeriodMonthly}
	require.NoError(t, store.SetBudget(ctx, replacement))
	assert.Equal(t, overall.ID, replacement.ID)

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 3)

	assert.Equal(t, overall.ID, budgets[0].ID)
	assert.True(t, budgets[0].Scope.IsOverall())
	assert.Equal(t, 1500.0, budgets[0].Amount)
	assert.Equal(t, model.PeriodMonthly, budgets[0].Period)

	name, ok := budgets[1].Scope.Category()
	assert.True(t, ok)
	assert.Equal(t, "Food", name)

	assert.Equal(t, model.PeriodWeekly, budgets[2].Period)
	assert.Equal(t, 250.0, budgets[2].Amount)
}

func TestSetBudget_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		budget *model.Budget
		name   string
	}{
		{name: "zero amount", budget: &model.Budget{Scope: model.OverallScope(), Period: model.PeriodMonthly}},
		{name: "bad period", budget: &model.Budget{Scope: model.OverallScope(), Amount: 10, Period: "yearly"}},
		{name: "empty category", budget: &model.Budget{Scope: model.CategoryScope(""), Amount: 10, Period: model.PeriodMonthly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.SetBudget(ctx, tt.budget), ErrInvalidBudget)
		})
	}
}

func TestDeleteBudget(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	budget := &model.Budget{Scope: model.CategoryScope("Bills"), Amount: 300, Period: model.PeriodMonthly}
	require.NoError(t, store.SetBudget(ctx, budget))
	require.NoError(t, store.DeleteBudget(ctx, budget.ID))

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)

	assert.ErrorIs(t, store.DeleteBudget(ctx, budget.ID), common.ErrNotFound)
}
