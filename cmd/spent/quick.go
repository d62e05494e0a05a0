package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/model"
	"github.com/spf13/cobra"
)

func quickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick [amount]",
		Short: "Quick-add an expense in the quick-add category",
		Long: `Record an expense dated today in the configured quick-add category
("Other" unless quick_add.category says otherwise).

Without an amount, the configured one-tap amounts are listed.

Examples:
  spent quick 50
  spent quick`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			if len(args) == 0 {
				printLine(cmd, cli.FormatTitle("Quick add"))
				for _, amount := range cfg.QuickAddAmounts {
					printf(cmd, "  %s  spent quick %s\n",
						cli.BoldStyle.Render(money(settings, amount)),
						strconv.FormatFloat(amount, 'f', -1, 64))
				}
				printf(cmd, "\nExpenses go to %s, dated today.\n", cli.BoldStyle.Render(cfg.QuickAddCategory))
				return nil
			}

			amount, err := cli.ParseAmount(args[0])
			if err != nil {
				return err
			}

			expense := model.Expense{
				Amount:   amount,
				Category: cfg.QuickAddCategory,
				Date:     today(),
			}
			if err := store.AddExpense(ctx, &expense); err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %s to %s", money(settings, amount), cfg.QuickAddCategory)))
			return nil
		},
	}
}
