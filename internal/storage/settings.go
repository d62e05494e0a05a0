package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spent/internal/model"
)

// GetSettings returns the stored settings, or the defaults if none were saved.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}
	return getSettings(ctx, s.db)
}

func getSettings(ctx context.Context, q queryer) (model.Settings, error) {
	var settings model.Settings
	err := q.QueryRowContext(ctx, `
		SELECT currency, currency_symbol, theme, daily_reminder, budget_alerts
		FROM settings
		WHERE id = 1`).Scan(
		&settings.Currency,
		&settings.CurrencySymbol,
		&settings.Theme,
		&settings.DailyReminder,
		&settings.BudgetAlerts,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings merges update into the current settings and saves them.
func (s *SQLiteStorage) UpdateSettings(ctx context.Context, update model.SettingsUpdate) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}

	var updated model.Settings
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getSettings(ctx, tx)
		if err != nil {
			return err
		}
		updated, err = update.Apply(current)
		if err != nil {
			return err
		}
		return putSettings(ctx, tx, updated)
	})
	if err != nil {
		return model.Settings{}, err
	}

	slog.Info("updated settings",
		"currency", updated.Currency,
		"theme", updated.Theme,
		"daily_reminder", updated.DailyReminder,
		"budget_alerts", updated.BudgetAlerts)
	return updated, nil
}

func putSettings(ctx context.Context, q queryer, settings model.Settings) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (id, currency, currency_symbol, theme, daily_reminder, budget_alerts)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			currency = excluded.currency,
			currency_symbol = excluded.currency_symbol,
			theme = excluded.theme,
			daily_reminder = excluded.daily_reminder,
			budget_alerts = excluded.budget_alerts`,
		settings.Currency,
		settings.CurrencySymbol,
		settings.Theme,
		settings.DailyReminder,
		settings.BudgetAlerts,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
