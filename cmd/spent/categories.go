package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage expense categories",
		Long: `List, add, edit and delete expense categories.

Expenses refer to categories by name. Renaming or deleting a category does
not touch existing expenses; they show as uncategorized until a category
with their name exists again.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				printLine(cmd, cli.InfoStyle.Render("No categories found. Use 'spent categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Category"),
				headerStyle.Render("Color"))
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", cat.ID, cli.FormatCategory(cat), cli.SubtleStyle.Render(cat.Color))
			}
			return w.Flush()
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var icon, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a new expense category.

Example:
  spent categories add Pets --icon 🐶 --color "hsl(30, 60%, 45%)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			if existing, ok := findCategory(categories, args[0]); ok {
				return common.NewUserError(fmt.Sprintf("Category %q already exists", existing), common.ErrAlreadyExists)
			}

			category := model.Category{Name: args[0], Icon: icon, Color: color}
			if err := store.AddCategory(ctx, &category); err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Created category %s (ID: %s)", cli.FormatCategory(category), category.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", model.UnknownCategoryIcon, "emoji shown next to the name")
	cmd.Flags().StringVar(&color, "color", model.UnknownCategoryColor, "CSS hsl() color")

	return cmd
}

func editCategoryCmd() *cobra.Command {
	var name, icon, color string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a category's name, icon or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var update model.CategoryUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("icon") {
				update.Icon = &icon
			}
			if cmd.Flags().Changed("color") {
				update.Color = &color
			}
			if update.Name == nil && update.Icon == nil && update.Color == nil {
				return errors.New("nothing to change: pass at least one of --name, --icon, --color")
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			updated, err := store.UpdateCategory(ctx, args[0], update)
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No category with id %s", args[0]), err)
			}
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			printLine(cmd, cli.FormatSuccess("Updated category "+cli.FormatCategory(*updated)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon")
	cmd.Flags().StringVar(&color, "color", "", "new CSS hsl() color")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			err = store.DeleteCategory(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No category with id %s", args[0]), err)
			}
			if err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			printLine(cmd, cli.FormatSuccess("Deleted category "+args[0]))
			return nil
		},
	}
}
