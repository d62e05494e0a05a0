package main

import (
	"fmt"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		Long: `Reset deletes every expense, category, budget and setting, then restores the
default categories and settings.

This is a destructive operation. Run 'spent export' first if you may want
the data back.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if !force {
				snap, err := store.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("failed to load data: %w", err)
				}
				printLine(cmd, cli.FormatWarning(fmt.Sprintf("This will delete %d expenses, %d categories and %d budgets.",
					len(snap.Expenses), len(snap.Categories), len(snap.Budgets))))

				ok, err := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(ctx, "Are you sure you want to continue?")
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if !ok {
					printLine(cmd, "Reset canceled.")
					return nil
				}
			}

			if err := store.ClearAll(ctx); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}

			printLine(cmd, cli.FormatSuccess("All data deleted. Default categories and settings restored."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
