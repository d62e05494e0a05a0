package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/google/uuid"
)

// ListCategories returns all categories in the order they were added.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	categories, err := listCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

func listCategories(ctx context.Context, q queryer) ([]model.Category, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, icon, color
		FROM categories
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// AddCategory appends a category. A missing ID is generated.
func (s *SQLiteStorage) AddCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := insertCategory(ctx, s.db, category); err != nil {
		return err
	}

	slog.Info("created category", "id", category.ID, "name", category.Name)
	return nil
}

// UpdateCategory changes a category in place. Expenses filed under the old
// name keep it.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id string, update model.CategoryUpdate) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var updated model.Category
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var current model.Category
		err := tx.QueryRowContext(ctx, `
			SELECT id, name, icon, color
			FROM categories
			WHERE id = ?
			ORDER BY seq
			LIMIT 1`, id).Scan(&current.ID, &current.Name, &current.Icon, &current.Color)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to query category: %w", err)
		}

		updated = update.Apply(current)
		if err := validateCategory(&updated); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE categories
			SET name = ?, icon = ?, color = ?
			WHERE id = ?`,
			updated.Name, updated.Icon, updated.Color, id)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("updated category", "id", id, "name", updated.Name)
	return &updated, nil
}

// DeleteCategory removes a category. Expenses and budgets that name it are
// left alone and fall back to the unknown-category display.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := requireAffected(result, "category", id); err != nil {
		return err
	}

	slog.Info("deleted category", "id", id)
	return nil
}

func insertCategory(ctx context.Context, q queryer, category *model.Category) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color)
		VALUES (?, ?, ?, ?)`,
		category.ID, category.Name, category.Icon, category.Color)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func seedDefaultCategories(ctx context.Context, q queryer) error {
	for i := range model.DefaultCategories {
		cat := model.DefaultCategories[i]
		if err := insertCategory(ctx, q, &cat); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}
	return nil
}
