package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spent/internal/model"
	"github.com/google/uuid"
)

// ListBudgets returns all budgets in the order they were first set.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listBudgets(ctx, s.db)
}

func listBudgets(ctx context.Context, q queryer) ([]model.Budget, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, category, amount, period
		FROM budgets
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var (
			budget   model.Budget
			category sql.NullString
		)
		if err := rows.Scan(&budget.ID, &category, &budget.Amount, &budget.Period); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budget.Scope = scopeFromColumn(category)
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// SetBudget creates the budget for its (scope, period) pair, or replaces the
// amount of the one already there. The stored ID is written back to budget.
func (s *SQLiteStorage) SetBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	replaced := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var existingID string
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM budgets
			WHERE period = ? AND category IS ?
			ORDER BY seq
			LIMIT 1`,
			budget.Period, scopeColumn(budget.Scope)).Scan(&existingID)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			if budget.ID == "" {
				budget.ID = uuid.NewString()
			}
			return insertBudget(ctx, tx, budget)
		case err != nil:
			return fmt.Errorf("failed to query budget: %w", err)
		}

		budget.ID = existingID
		replaced = true
		_, err = tx.ExecContext(ctx, `UPDATE budgets SET amount = ? WHERE id = ?`, budget.Amount, existingID)
		if err != nil {
			return fmt.Errorf("failed to update budget: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("set budget",
		"id", budget.ID,
		"scope", budget.Scope.String(),
		"period", budget.Period,
		"amount", budget.Amount,
		"replaced", replaced)
	return nil
}

// DeleteBudget removes the budget with the given id.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if err := requireAffected(result, "budget", id); err != nil {
		return err
	}

	slog.Info("deleted budget", "id", id)
	return nil
}

func insertBudget(ctx context.Context, q queryer, budget *model.Budget) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO budgets (id, category, amount, period)
		VALUES (?, ?, ?, ?)`,
		budget.ID, scopeColumn(budget.Scope), budget.Amount, budget.Period)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

func scopeColumn(scope model.BudgetScope) sql.NullString {
	name, ok := scope.Category()
	return sql.NullString{String: name, Valid: ok}
}

func scopeFromColumn(col sql.NullString) model.BudgetScope {
	if !col.Valid {
		return model.OverallScope()
	}
	return model.CategoryScope(col.String)
}
