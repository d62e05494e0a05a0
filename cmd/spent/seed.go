package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/seed"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		months   int
		perMonth int
		seedVal  int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo expenses",
		Long: `Generate fake expenses across your categories for trying out the reports
and dashboard. The same --seed always produces the same data.

Example:
  spent seed --months 3 --per-month 40`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if months <= 0 || perMonth <= 0 {
				return fmt.Errorf("--months and --per-month must be positive")
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			names := make([]string, len(categories))
			for i, c := range categories {
				names[i] = c.Name
			}

			if !cmd.Flags().Changed("seed") {
				seedVal = time.Now().UnixNano()
			}
			expenses := seed.NewGenerator(seed.Options{
				Categories: names,
				Months:     months,
				PerMonth:   perMonth,
				Seed:       seedVal,
			}).Generate(today())

			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(expenses), "Seeding expenses")
			for i := range expenses {
				if err := store.AddExpense(ctx, &expenses[i]); err != nil {
					return fmt.Errorf("failed to add expense: %w", err)
				}
				_ = bar.Add(1)
			}

			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %d demo expenses over %d months (seed %d)", len(expenses), months, seedVal)))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "number of months to fill, ending with this one")
	cmd.Flags().IntVar(&perMonth, "per-month", 30, "expenses per month")
	cmd.Flags().Int64Var(&seedVal, "seed", 0, "random seed (default: time based)")

	return cmd
}
