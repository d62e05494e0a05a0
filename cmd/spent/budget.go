package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Set and review budgets",
		Long: `Set spending limits overall or per category and see how much of each is used.

Only monthly budgets are tracked against spending. Weekly budgets can be
stored but are not evaluated.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var category, period string

	cmd := &cobra.Command{
		Use:   "set <amount>",
		Short: "Set a budget",
		Long: `Set a budget. Without --category the budget covers all spending. Setting a
budget for a category and period that already has one replaces its amount.

Examples:
  spent budget set 30000
  spent budget set 8000 --category Food`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := cli.ParseAmount(args[0])
			if err != nil {
				return err
			}
			p, err := model.ParseBudgetPeriod(period)
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			scope := model.OverallScope()
			if category != "" {
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to get categories: %w", err)
				}
				name, ok := findCategory(categories, category)
				if !ok {
					return common.NewUserError(fmt.Sprintf("Unknown category %q. See 'spent categories list'.", category), nil)
				}
				scope = model.CategoryScope(name)
			}

			budget := model.Budget{Scope: scope, Amount: amount, Period: p}
			if err := store.SetBudget(ctx, &budget); err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}
			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Set %s %s budget to %s", p, scope, money(settings, amount))))
			if p == model.PeriodWeekly {
				printLine(cmd, cli.SubtleStyle.Render("  Weekly budgets are stored but not tracked."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category the budget applies to (default: all spending)")
	cmd.Flags().StringVarP(&period, "period", "p", string(model.PeriodMonthly), "monthly or weekly")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show budgets and how much of each is used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ref, err := parseMonth(month)
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			snap, err := store.Snapshot(ctx)
			if err != nil {
				return fmt.Errorf("failed to load data: %w", err)
			}

			view := viewmodel.Build(*snap, ref, viewmodel.Options{}).Budget
			if !view.HasBudgets() {
				printLine(cmd, cli.InfoStyle.Render("No budgets set. Use 'spent budget set <amount>' to add one."))
				return nil
			}

			printLine(cmd, cli.FormatTitle("Budgets for "+monthLabel(ref)))

			if view.Overall != nil {
				printLine(cmd, cli.BoldStyle.Render("Overall"))
				printBudgetLine(cmd, snap.Settings, "all spending", view.Overall.BudgetID, *view.Overall)
			}
			if len(view.Categories) > 0 {
				printLine(cmd, cli.BoldStyle.Render("Categories"))
				for _, row := range view.Categories {
					printBudgetLine(cmd, snap.Settings, cli.FormatCategory(row.Category), row.BudgetID, row.BudgetStatus)
				}
			}
			if len(view.Weekly) > 0 {
				printLine(cmd, cli.BoldStyle.Render("Weekly (not tracked)"))
				for _, b := range view.Weekly {
					printf(cmd, "  %-20s %s  %s\n", b.Scope, money(snap.Settings, b.Amount), cli.SubtleStyle.Render(b.ID))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to evaluate (YYYY-MM)")

	return cmd
}

func printBudgetLine(cmd *cobra.Command, settings model.Settings, label, id string, s analytics.BudgetStatus) {
	printf(cmd, "  %s\n    %s of %s  %s  %s  %s\n",
		label,
		cli.BoldStyle.Render(money(settings, s.Spent)),
		money(settings, s.Budget),
		cli.StatusStyle(s.Status).Render(cli.FormatPercent(s.Percentage)),
		cli.FormatStatus(s.Status),
		cli.SubtleStyle.Render(id))
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			err = store.DeleteBudget(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No budget with id %s", args[0]), err)
			}
			if err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}

			printLine(cmd, cli.FormatSuccess("Deleted budget "+args[0]))
			return nil
		},
	}
}
