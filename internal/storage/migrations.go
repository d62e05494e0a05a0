package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spent/internal/common"
)

// ExpectedSchemaVersion is the user_version of a fully migrated database.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(context.Context, *sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			queries := []string{
				// seq gives a stable storage order; ids come from the
				// application and are not required to be unique so that
				// imported documents are accepted as they are.
				`CREATE TABLE IF NOT EXISTS expenses (
					seq INTEGER PRIMARY KEY AUTOINCREMENT,
					id TEXT NOT NULL,
					amount REAL NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					note TEXT NOT NULL DEFAULT '',
					date TEXT NOT NULL DEFAULT '',
					created_at TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE INDEX idx_expenses_id ON expenses(id)`,

				`CREATE TABLE IF NOT EXISTS categories (
					seq INTEGER PRIMARY KEY AUTOINCREMENT,
					id TEXT NOT NULL,
					name TEXT NOT NULL,
					icon TEXT NOT NULL DEFAULT '',
					color TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE INDEX idx_categories_id ON categories(id)`,

				// A NULL category is the overall scope.
				`CREATE TABLE IF NOT EXISTS budgets (
					seq INTEGER PRIMARY KEY AUTOINCREMENT,
					id TEXT NOT NULL,
					category TEXT,
					amount REAL NOT NULL,
					period TEXT NOT NULL
				)`,
				`CREATE INDEX idx_budgets_id ON budgets(id)`,

				`CREATE TABLE IF NOT EXISTS settings (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					currency TEXT NOT NULL,
					currency_symbol TEXT NOT NULL,
					theme TEXT NOT NULL,
					daily_reminder INTEGER NOT NULL,
					budget_alerts INTEGER NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.ExecContext(ctx, query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default categories",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			return seedDefaultCategories(ctx, tx)
		},
	},
	{
		Version:     3,
		Description: "Index expenses by date",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`)
			return err
		},
	},
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// apply runs one migration and bumps user_version in the same transaction.
func (s *SQLiteStorage) apply(ctx context.Context, m Migration) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := m.Up(ctx, tx); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
		}
		return nil
	})
}

// Migrate brings the schema up to ExpectedSchemaVersion. A database written
// by a newer build is refused rather than downgraded.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if current > ExpectedSchemaVersion {
		return fmt.Errorf("%w: schema version %d is newer than supported version %d",
			common.ErrDatabaseCorrupted, current, ExpectedSchemaVersion)
	}

	pending := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		pending++
		slog.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	if current, err = s.schemaVersion(ctx); err != nil {
		return err
	}
	if current != ExpectedSchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, current)
	}
	if pending > 0 {
		slog.Info("Database schema updated", "version", current, "migrations", pending)
	}
	return nil
}
