package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spent/internal/model"
)

// Snapshot reads every collection inside one transaction so the result is
// consistent.
func (s *SQLiteStorage) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var snap model.Snapshot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.Expenses, err = listExpenses(ctx, tx); err != nil {
			return err
		}
		if snap.Categories, err = listCategories(ctx, tx); err != nil {
			return err
		}
		if snap.Budgets, err = listBudgets(ctx, tx); err != nil {
			return err
		}
		snap.Settings, err = getSettings(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded snapshot",
		"expenses", len(snap.Expenses),
		"categories", len(snap.Categories),
		"budgets", len(snap.Budgets))
	return &snap, nil
}

// ClearAll deletes all expenses, budgets and settings, and puts the default
// categories back in place of the user's.
func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"expenses", "categories", "budgets", "settings"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return seedDefaultCategories(ctx, tx)
	})
	if err != nil {
		return err
	}

	slog.Info("cleared all data")
	return nil
}
