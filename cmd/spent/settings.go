package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/model"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display and reminder settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			printSettings(cmd, settings)
			return nil
		},
	}
}

func printSettings(cmd *cobra.Command, s model.Settings) {
	printLine(cmd, cli.FormatTitle("Settings"))
	printf(cmd, "  %-16s %s (%s)\n", "Currency", s.Currency, s.CurrencySymbol)
	printf(cmd, "  %-16s %s\n", "Theme", s.Theme)
	printf(cmd, "  %-16s %s\n", "Daily reminder", onOff(s.DailyReminder))
	printf(cmd, "  %-16s %s\n", "Budget alerts", onOff(s.BudgetAlerts))
}

func onOff(b bool) string {
	if b {
		return cli.SuccessStyle.Render("on")
	}
	return cli.SubtleStyle.Render("off")
}

func setSettingsCmd() *cobra.Command {
	var (
		currency      string
		theme         string
		dailyReminder bool
		budgetAlerts  bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change settings. Only the flags you pass are changed.

Examples:
  spent settings set --currency USD
  spent settings set --theme light --daily-reminder=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var update model.SettingsUpdate
			flags := cmd.Flags()
			if flags.Changed("currency") {
				code := strings.ToUpper(currency)
				if _, ok := model.LookupCurrency(code); !ok {
					return fmt.Errorf("unsupported currency %q (want one of %s)", currency, currencyCodes())
				}
				update.Currency = &code
			}
			if flags.Changed("theme") {
				t, err := model.ParseTheme(strings.ToLower(theme))
				if err != nil {
					return err
				}
				update.Theme = &t
			}
			if flags.Changed("daily-reminder") {
				update.DailyReminder = &dailyReminder
			}
			if flags.Changed("budget-alerts") {
				update.BudgetAlerts = &budgetAlerts
			}
			if update == (model.SettingsUpdate{}) {
				return errors.New("nothing to change: pass at least one of --currency, --theme, --daily-reminder, --budget-alerts")
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			settings, err := store.UpdateSettings(ctx, update)
			if err != nil {
				return fmt.Errorf("failed to update settings: %w", err)
			}

			printLine(cmd, cli.FormatSuccess("Settings saved"))
			printSettings(cmd, settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "currency code ("+currencyCodes()+")")
	cmd.Flags().StringVar(&theme, "theme", "", "light, dark or system")
	cmd.Flags().BoolVar(&dailyReminder, "daily-reminder", true, "send the daily spending digest")
	cmd.Flags().BoolVar(&budgetAlerts, "budget-alerts", true, "include budget alerts in the digest")

	return cmd
}

func currencyCodes() string {
	codes := make([]string, len(model.SupportedCurrencies))
	for i, c := range model.SupportedCurrencies {
		codes[i] = c.Code
	}
	return strings.Join(codes, ", ")
}
