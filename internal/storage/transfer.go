package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
	"github.com/spf13/cast"
)

// Document is the export file format.
type Document struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Expenses   []model.Expense  `json:"expenses"`
	Categories []model.Category `json:"categories"`
	Budgets    []model.Budget   `json:"budgets"`
	Settings   model.Settings   `json:"settings"`
}

// Export serializes the whole store as an indented JSON document stamped
// with now.
func (s *SQLiteStorage) Export(ctx context.Context, now time.Time) ([]byte, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	doc := Document{
		Expenses:   nonNil(snap.Expenses),
		Categories: nonNil(snap.Categories),
		Budgets:    nonNil(snap.Budgets),
		Settings:   snap.Settings,
		ExportedAt: now,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	slog.Info("exported data",
		"expenses", len(doc.Expenses),
		"categories", len(doc.Categories),
		"budgets", len(doc.Budgets))
	return data, nil
}

// Import replaces each bucket named in the document with the document's
// contents. Buckets the document leaves out, sets to null, or sets to
// anything but a list are kept. Only a document that is not a JSON object is
// rejected: record fields are coerced to their types, and values that cannot
// be coerced become zero. Either every bucket is replaced or, on any error,
// none is.
func (s *SQLiteStorage) Import(ctx context.Context, data []byte) (service.ImportSummary, error) {
	var summary service.ImportSummary
	if err := validateContext(ctx); err != nil {
		return summary, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return summary, fmt.Errorf("%w: expected a JSON object", common.ErrInvalidDocument)
	}
	var doc map[string]any
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return summary, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}

	expenses, hasExpenses := decodeBucket(doc, "expenses", decodeExpense)
	categories, hasCategories := decodeBucket(doc, "categories", decodeCategory)
	budgets, hasBudgets := decodeBucket(doc, "budgets", decodeBudget)
	settings, hasSettings := decodeSettings(doc["settings"])

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if hasExpenses {
			if err := replaceExpenses(ctx, tx, expenses); err != nil {
				return err
			}
			summary.Expenses = intPtr(len(expenses))
		}
		if hasCategories {
			if err := replaceCategories(ctx, tx, categories); err != nil {
				return err
			}
			summary.Categories = intPtr(len(categories))
		}
		if hasBudgets {
			if err := replaceBudgets(ctx, tx, budgets); err != nil {
				return err
			}
			summary.Budgets = intPtr(len(budgets))
		}
		if hasSettings {
			if err := putSettings(ctx, tx, settings); err != nil {
				return err
			}
			summary.Settings = true
		}
		return nil
	})
	if err != nil {
		return service.ImportSummary{}, fmt.Errorf("import failed: %w", err)
	}

	slog.Info("imported data", "replaced", summary.Replaced())
	return summary, nil
}

// decodeBucket reads doc[name] as a list of records. ok is false when the
// key is missing, null, or not a list. Entries that are not objects are
// skipped.
func decodeBucket[T any](doc map[string]any, name string, decode func(map[string]any) T) (items []T, ok bool) {
	value, found := doc[name]
	if !found || value == nil {
		return nil, false
	}
	list, isList := value.([]any)
	if !isList {
		slog.Warn("ignoring import bucket that is not a list", "bucket", name)
		return nil, false
	}

	items = make([]T, 0, len(list))
	for i, entry := range list {
		record, isRecord := entry.(map[string]any)
		if !isRecord {
			slog.Warn("skipping import entry that is not an object", "bucket", name, "index", i)
			continue
		}
		items = append(items, decode(record))
	}
	return items, true
}

func decodeExpense(r map[string]any) model.Expense {
	return model.Expense{
		ID:        cast.ToString(r["id"]),
		Amount:    cast.ToFloat64(r["amount"]),
		Category:  cast.ToString(r["category"]),
		Note:      cast.ToString(r["note"]),
		Date:      looseDate(r["date"]),
		CreatedAt: cast.ToTime(r["createdAt"]),
	}
}

func decodeCategory(r map[string]any) model.Category {
	return model.Category{
		ID:    cast.ToString(r["id"]),
		Name:  cast.ToString(r["name"]),
		Icon:  cast.ToString(r["icon"]),
		Color: cast.ToString(r["color"]),
	}
}

// decodeBudget reads a null or missing category as the overall budget.
func decodeBudget(r map[string]any) model.Budget {
	scope := model.OverallScope()
	if name := r["category"]; name != nil {
		scope = model.CategoryScope(cast.ToString(name))
	}
	return model.Budget{
		ID:     cast.ToString(r["id"]),
		Scope:  scope,
		Amount: cast.ToFloat64(r["amount"]),
		Period: model.BudgetPeriod(cast.ToString(r["period"])),
	}
}

// decodeSettings lays the given fields over the default settings.
func decodeSettings(value any) (model.Settings, bool) {
	settings := model.DefaultSettings
	fields, ok := value.(map[string]any)
	if !ok {
		if value != nil {
			slog.Warn("ignoring import settings that are not an object")
		}
		return settings, false
	}

	if v, found := fields["currency"]; found {
		settings.Currency = cast.ToString(v)
	}
	if v, found := fields["currencySymbol"]; found {
		settings.CurrencySymbol = cast.ToString(v)
	}
	if v, found := fields["theme"]; found {
		settings.Theme = model.Theme(cast.ToString(v))
	}
	if v, found := fields["dailyReminder"]; found {
		settings.DailyReminder = cast.ToBool(v)
	}
	if v, found := fields["budgetAlerts"]; found {
		settings.BudgetAlerts = cast.ToBool(v)
	}
	return settings, true
}

// looseDate accepts the same date strings the database does. Anything else
// is the zero date.
func looseDate(value any) model.Date {
	var d model.Date
	if err := d.Scan(cast.ToString(value)); err != nil {
		return model.Date{}
	}
	return d
}

// replaceExpenses inserts in reverse so that the first document entry ends
// up newest, matching the order ListExpenses returns.
func replaceExpenses(ctx context.Context, tx *sql.Tx, expenses []model.Expense) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	for i := len(expenses) - 1; i >= 0; i-- {
		if err := insertExpense(ctx, tx, &expenses[i]); err != nil {
			return err
		}
	}
	return nil
}

func replaceCategories(ctx context.Context, tx *sql.Tx, categories []model.Category) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	for i := range categories {
		if err := insertCategory(ctx, tx, &categories[i]); err != nil {
			return err
		}
	}
	return nil
}

func replaceBudgets(ctx context.Context, tx *sql.Tx, budgets []model.Budget) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("failed to clear budgets: %w", err)
	}
	for i := range budgets {
		if err := insertBudget(ctx, tx, &budgets[i]); err != nil {
			return err
		}
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func intPtr(n int) *int {
	return &n
}
