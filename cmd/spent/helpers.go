package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig reads the typed configuration from viper.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the configured database and brings its schema up to
// date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to open database: %w", err)
	}
	return store, cfg, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// printf writes to the command's output. Write errors are only logged.
func printf(cmd *cobra.Command, format string, args ...any) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func printLine(cmd *cobra.Command, line string) {
	printf(cmd, "%s\n", line)
}

// today is the clock every command uses, so tests can pin it.
var today = model.Today

// parseDay accepts YYYY-MM-DD, "today" or "yesterday"; empty means today.
func parseDay(s string) (model.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today(), nil
	case "yesterday":
		return today().AddDays(-1), nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// parseMonth turns a YYYY-MM month into the date it is evaluated at: today
// for the current month, the month's last day otherwise. Empty means the
// current month.
func parseMonth(s string) (model.Date, error) {
	now := today()
	if s == "" {
		return now, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	first := model.DateOf(t)
	if first.SameMonth(now) {
		return now, nil
	}
	return model.NewDate(first.Year, first.Month, first.DaysInMonth()), nil
}

func monthLabel(d model.Date) string {
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}

func money(settings model.Settings, amount float64) string {
	symbol := settings.CurrencySymbol
	if symbol == "" {
		symbol = model.DefaultSettings.CurrencySymbol
	}
	return cli.FormatMoney(symbol, amount)
}

// findCategory resolves a category name case-insensitively against the
// stored categories, returning the stored spelling.
func findCategory(categories []model.Category, name string) (string, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.Name, true
		}
	}
	return "", false
}
