package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON",
		Long: `Write every expense, category, budget and the settings as one JSON document.

Examples:
  spent export > backup.json
  spent export -o backup.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			data, err := store.Export(ctx, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			if err := os.WriteFile(output, append(data, '\n'), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			printLine(cmd, cli.FormatSuccess("Exported to "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: stdout)")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export",
		Long: `Load a document written by 'spent export'.

Each section present in the file (expenses, categories, budgets, settings)
replaces what is stored; sections missing from the file are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			summary, err := store.Import(ctx, data)
			if errors.Is(err, common.ErrInvalidDocument) {
				return common.NewUserError(args[0]+" is not a spent export", err)
			}
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}

			if !summary.Replaced() {
				printLine(cmd, cli.FormatWarning("Nothing to import: the file has no expenses, categories, budgets or settings"))
				return nil
			}

			printLine(cmd, cli.FormatSuccess("Import complete"))
			if summary.Expenses != nil {
				printf(cmd, "  %-12s %d\n", "Expenses", *summary.Expenses)
			}
			if summary.Categories != nil {
				printf(cmd, "  %-12s %d\n", "Categories", *summary.Categories)
			}
			if summary.Budgets != nil {
				printf(cmd, "  %-12s %d\n", "Budgets", *summary.Budgets)
			}
			if summary.Settings {
				printf(cmd, "  %-12s replaced\n", "Settings")
			}
			return nil
		},
	}
}
