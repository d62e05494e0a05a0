// Package testutil provides test utilities for the spent project: an
// isolated store per test and a fluent builder for expense fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/storage"
)

// TestStore is a migrated in-memory store owned by one test.
type TestStore struct {
	*storage.SQLiteStorage
	t *testing.T
}

// SetupTestStore creates a new in-memory store with the default categories.
// It is closed when the test ends.
//
// Example:
//
//	store := testutil.SetupTestStore(t)
//	store.MustAddExpenses(testutil.NewExpenses(t).
//		In("2024-03").
//		Add(120, "Food", 2).
//		Build()...)
func SetupTestStore(t *testing.T) *TestStore {
	t.Helper()

	s, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return &TestStore{SQLiteStorage: s, t: t}
}

// MustAddExpenses stores expenses in order, failing the test on error. The
// last expense given lists first.
func (s *TestStore) MustAddExpenses(expenses ...model.Expense) []model.Expense {
	s.t.Helper()
	if len(expenses) == 0 {
		return nil
	}
	if err := s.AddExpenses(context.Background(), expenses); err != nil {
		s.t.Fatalf("failed to add expenses: %v", err)
	}
	return expenses
}

// MustSetBudget stores a budget, failing the test on error.
func (s *TestStore) MustSetBudget(scope model.BudgetScope, amount float64, period model.BudgetPeriod) model.Budget {
	s.t.Helper()
	budget := model.Budget{Scope: scope, Amount: amount, Period: period}
	if err := s.SetBudget(context.Background(), &budget); err != nil {
		s.t.Fatalf("failed to set budget: %v", err)
	}
	return budget
}

// MustSnapshot loads the store, failing the test on error.
func (s *TestStore) MustSnapshot() *model.Snapshot {
	s.t.Helper()
	snap, err := s.Snapshot(context.Background())
	if err != nil {
		s.t.Fatalf("failed to load snapshot: %v", err)
	}
	return snap
}
