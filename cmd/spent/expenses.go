package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "ex"},
		Short:   "Record and manage expenses",
		Long:    `Add, list, edit and delete the expenses you have recorded.`,
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(editExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		amountText string
		category   string
		note       string
		dateText   string
	)

	cmd := &cobra.Command{
		Use:   "add [amount]",
		Short: "Record an expense",
		Long: `Record an expense. Anything not given as an argument or flag is asked for.

Examples:
  spent expenses add 250 --category Food --note "Lunch"
  spent expenses add 40 -c Transport --date yesterday
  spent expenses add`,
		Args: cobra.MaximumNArgs(1),
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

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			if len(args) == 1 {
				amountText = args[0]
			}
			interactive := amountText == ""
			var amount float64
			if interactive {
				amount, err = prompter.Amount(ctx)
			} else {
				amount, err = cli.ParseAmount(amountText)
			}
			if err != nil {
				return err
			}

			if category == "" {
				category, err = prompter.Category(ctx, categories)
				if err != nil {
					return err
				}
			} else if name, ok := findCategory(categories, category); ok {
				category = name
			} else {
				printLine(cmd, cli.FormatWarning(fmt.Sprintf("%q is not a known category; it will show as uncategorized", category)))
			}

			if interactive && !cmd.Flags().Changed("note") {
				note, err = prompter.Line(ctx, "Note (optional)")
				if err != nil {
					return err
				}
			}

			date, err := parseDay(dateText)
			if err != nil {
				return err
			}

			expense := model.Expense{
				Amount:   amount,
				Category: category,
				Note:     strings.TrimSpace(note),
				Date:     date,
			}
			if err := store.AddExpense(ctx, &expense); err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}
			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %s to %s on %s", money(settings, amount), category, date)))
			printLine(cmd, cli.SubtleStyle.Render("  id: "+expense.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountText, "amount", "a", "", "amount spent")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	cmd.Flags().StringVarP(&dateText, "date", "d", "", "date (YYYY-MM-DD, today, yesterday)")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		month    string
		category string
		limit    int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Long:  `List the expenses of a month (the current one by default), newest first.`,
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
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			expenses := snap.Expenses
			if !all {
				expenses, err = store.ListExpensesInMonth(ctx, ref)
				if err != nil {
					return fmt.Errorf("failed to load expenses: %w", err)
				}
			}
			if category != "" {
				expenses = filterCategory(expenses, category)
			}
			if limit > 0 {
				expenses = analytics.RecentExpenses(expenses, limit)
			}

			if len(expenses) == 0 {
				printLine(cmd, cli.InfoStyle.Render("No expenses found. Use 'spent expenses add' to record one."))
				return nil
			}

			index := snap.CategoryIndex()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Date"),
				headerStyle.Render("Category"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Note"),
				headerStyle.Render("ID"))

			var total float64
			for _, e := range expenses {
				cat := index.Lookup(e.Category)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Date, cat.Icon+" "+cat.Name, money(snap.Settings, e.Amount), e.Note, cli.SubtleStyle.Render(e.ID))
				total += e.Amount
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write expenses: %w", err)
			}

			printf(cmd, "\n%d expenses, %s\n", len(expenses), cli.BoldStyle.Render(money(snap.Settings, total)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to list (YYYY-MM)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "show at most this many")
	cmd.Flags().BoolVar(&all, "all", false, "list every month")

	return cmd
}

func filterCategory(expenses []model.Expense, category string) []model.Expense {
	var kept []model.Expense
	for _, e := range expenses {
		if strings.EqualFold(e.Category, category) {
			kept = append(kept, e)
		}
	}
	return kept
}

func editExpenseCmd() *cobra.Command {
	var (
		amountText string
		category   string
		note       string
		dateText   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an expense",
		Long: `Change an expense. Only the flags you pass are changed.

Example:
  spent expenses edit 3f2a... --amount 120 --note "Split with Sam"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var update model.ExpenseUpdate
			flags := cmd.Flags()
			if flags.Changed("amount") {
				amount, err := cli.ParseAmount(amountText)
				if err != nil {
					return err
				}
				update.Amount = &amount
			}
			if flags.Changed("category") {
				update.Category = &category
			}
			if flags.Changed("note") {
				trimmed := strings.TrimSpace(note)
				update.Note = &trimmed
			}
			if flags.Changed("date") {
				date, err := parseDay(dateText)
				if err != nil {
					return err
				}
				update.Date = &date
			}
			if update.IsEmpty() {
				return errors.New("nothing to change: pass at least one of --amount, --category, --note, --date")
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if update.Category != nil {
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to get categories: %w", err)
				}
				if name, ok := findCategory(categories, *update.Category); ok {
					update.Category = &name
				}
			}

			updated, err := store.UpdateExpense(ctx, args[0], update)
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No expense with id %s", args[0]), err)
			}
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}
			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Updated expense: %s, %s on %s",
				money(settings, updated.Amount), updated.Category, updated.Date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountText, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note (empty to clear)")
	cmd.Flags().StringVarP(&dateText, "date", "d", "", "new date (YYYY-MM-DD, today, yesterday)")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			err = store.DeleteExpense(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No expense with id %s", args[0]), err)
			}
			if err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			printLine(cmd, cli.FormatSuccess("Deleted expense "+args[0]))
			return nil
		},
	}
}
