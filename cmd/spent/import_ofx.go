package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var (
		dryRun   bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import expenses from OFX/QFX bank statements",
		Long: `Turn the debits of OFX or QFX statements exported from your bank or card
into expenses. Credits (deposits, refunds, card payments) are skipped, and
lines already imported are recognized and skipped too.

Examples:
  spent import-ofx ~/Downloads/statement.qfx
  spent import-ofx ~/Downloads/*.qfx --category Shopping
  spent import-ofx ~/Downloads/*.ofx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if category == "" {
				category = cfg.OFXCategory
			}
			parser := ofx.NewParser(category)

			var (
				pending    []model.Expense
				seen       = make(map[string]bool)
				duplicates int
				credits    int
			)

			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Reading statements")
			for _, path := range files {
				stmt, err := parseStatement(cmd, parser, path)
				_ = bar.Add(1)
				if err != nil {
					common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
					continue
				}
				credits += stmt.Credits

				for _, e := range stmt.Expenses {
					// Lines without a FITID cannot be recognized again.
					if e.ID == "" {
						pending = append(pending, e)
						continue
					}
					if seen[e.ID] {
						duplicates++
						continue
					}
					seen[e.ID] = true

					_, err := store.GetExpense(ctx, e.ID)
					switch {
					case err == nil:
						duplicates++
						continue
					case !errors.Is(err, common.ErrNotFound):
						return fmt.Errorf("failed to check for duplicates: %w", err)
					}
					pending = append(pending, e)
				}
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			if dryRun {
				printLine(cmd, cli.FormatInfo(fmt.Sprintf("Dry run: %d new expenses found", len(pending))))
				for _, e := range pending {
					printf(cmd, "  %s  %12s  %s\n", e.Date, money(settings, e.Amount), e.Note)
				}
			} else if len(pending) > 0 {
				if err := store.AddExpenses(ctx, pending); err != nil {
					return fmt.Errorf("failed to save expenses: %w", err)
				}
				printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses into %s", len(pending), category)))
			} else {
				printLine(cmd, cli.FormatInfo("No new expenses to import"))
			}

			printf(cmd, "  %d already imported, %d credits skipped\n", duplicates, credits)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category for imported expenses (default: import.ofx_category)")

	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

func parseStatement(cmd *cobra.Command, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close file", "file", path, "error", err)
		}
	}()

	return parser.ParseFile(cmd.Context(), f)
}
