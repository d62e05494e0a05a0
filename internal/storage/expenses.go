package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/google/uuid"
)

const expenseColumns = `id, amount, category, note, date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListExpenses returns every expense, newest first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listExpenses(ctx, s.db)
}

func listExpenses(ctx context.Context, q queryer) ([]model.Expense, error) {
	return queryExpenses(ctx, q, `SELECT `+expenseColumns+` FROM expenses ORDER BY seq DESC`)
}

// ListExpensesInMonth returns the expenses dated in ref's calendar month,
// newest first.
func (s *SQLiteStorage) ListExpensesInMonth(ctx context.Context, ref model.Date) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	start := ref.FirstOfMonth()
	end := start.AddMonths(1)

	return queryExpenses(ctx, s.db, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE date >= ? AND date < ?
		ORDER BY seq DESC`,
		start, end)
}

// GetExpense returns the expense with the given id.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getExpense(ctx, s.db, id)
}

func getExpense(ctx context.Context, q queryer, id string) (*model.Expense, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = ?
		ORDER BY seq DESC
		LIMIT 1`, id)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}
	return &expense, nil
}

// AddExpense stores a new expense. A missing ID and creation time are
// filled in on the passed value.
func (s *SQLiteStorage) AddExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	s.stampExpense(expense)
	if err := insertExpense(ctx, s.db, expense); err != nil {
		return err
	}

	slog.Debug("added expense",
		"id", expense.ID,
		"amount", expense.Amount,
		"category", expense.Category,
		"date", expense.Date.String())
	return nil
}

// AddExpenses stores a batch of expenses in one transaction. Elements are
// inserted in slice order, so the last element lists first.
func (s *SQLiteStorage) AddExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return err
	}

	for i := range expenses {
		s.stampExpense(&expenses[i])
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range expenses {
			if err := insertExpense(ctx, tx, &expenses[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("added expenses", "count", len(expenses))
	return nil
}

// UpdateExpense merges update into the stored expense and returns the result.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id string, update model.ExpenseUpdate) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var updated model.Expense
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getExpense(ctx, tx, id)
		if err != nil {
			return err
		}

		updated = update.Apply(*current)
		if update.IsEmpty() {
			return nil
		}
		if err := validateExpense(&updated); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE expenses
			SET amount = ?, category = ?, note = ?, date = ?
			WHERE id = ?`,
			updated.Amount, updated.Category, updated.Note, updated.Date, id)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("updated expense", "id", id)
	return &updated, nil
}

// DeleteExpense removes the expense with the given id.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := requireAffected(result, "expense", id); err != nil {
		return err
	}

	slog.Debug("deleted expense", "id", id)
	return nil
}

func (s *SQLiteStorage) stampExpense(expense *model.Expense) {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = s.now()
	}
}

func insertExpense(ctx context.Context, q queryer, expense *model.Expense) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.Amount,
		expense.Category,
		expense.Note,
		expense.Date,
		formatTimestamp(expense.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func queryExpenses(ctx context.Context, q queryer, query string, args ...any) ([]model.Expense, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(row rowScanner) (model.Expense, error) {
	var (
		expense   model.Expense
		createdAt string
	)
	if err := row.Scan(
		&expense.ID,
		&expense.Amount,
		&expense.Category,
		&expense.Note,
		&expense.Date,
		&createdAt,
	); err != nil {
		return model.Expense{}, err
	}

	t, err := parseTimestamp(createdAt)
	if err != nil {
		return model.Expense{}, err
	}
	expense.CreatedAt = t
	return expense, nil
}

// formatTimestamp keeps the zone offset so exported documents show the
// same instant that was recorded.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", common.ErrDatabaseCorrupted, s)
	}
	return t, nil
}

func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, common.ErrNotFound)
	}
	return nil
}
