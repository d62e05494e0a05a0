package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const chartWidth = 30

// loadDashboard builds the dashboard data for the month named by the
// --month flag.
func loadDashboard(ctx context.Context, month string) (viewmodel.Dashboard, *model.Snapshot, error) {
	ref, err := parseMonth(month)
	if err != nil {
		return viewmodel.Dashboard{}, nil, err
	}

	store, cfg, err := initStorage(ctx)
	if err != nil {
		return viewmodel.Dashboard{}, nil, err
	}
	defer closeStorage(store)

	snap, err := store.Snapshot(ctx)
	if err != nil {
		return viewmodel.Dashboard{}, nil, fmt.Errorf("failed to load data: %w", err)
	}

	return viewmodel.Build(*snap, ref, dashboardOptions(cfg)), snap, nil
}

func dashboardOptions(cfg config.Config) viewmodel.Options {
	return viewmodel.Options{
		RecentLimit:    cfg.RecentLimit,
		SpikeThreshold: cfg.SpikeThreshold,
	}
}

func summaryCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the month at a glance",
		Long: `Show the month's total against last month, this week's total, the daily
average and projection, a chart of daily spending and the latest expenses.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, snap, err := loadDashboard(cmd.Context(), month)
			if err != nil {
				return err
			}
			home := d.Home
			m := func(amount float64) string { return money(snap.Settings, amount) }

			printLine(cmd, cli.FormatTitle(monthLabel(d.Month)))
			printf(cmd, "  %-15s %s  %s\n", "This month", cli.BoldStyle.Render(m(home.Comparison.Current)), cli.FormatChange(home.Comparison.ChangePercent))
			printf(cmd, "  %-15s %s\n", "This week", m(home.WeekTotal))
			printf(cmd, "  %-15s %s\n", "Daily average", m(home.DailyAverage))
			printf(cmd, "  %-15s %s\n", "Projected", m(home.Projection))

			if home.MaxDaily > 0 {
				printf(cmd, "\n%s\n", cli.BoldStyle.Render("Daily spending"))
				for _, day := range home.Daily {
					if day.Amount == 0 {
						continue
					}
					printf(cmd, "  %2d %s %s\n",
						day.Day,
						lipgloss.NewStyle().Foreground(cli.PrimaryColor).Width(chartWidth).Render(cli.Bar(day.Amount, home.MaxDaily, chartWidth)),
						m(day.Amount))
				}
			}

			printf(cmd, "\n%s\n", cli.BoldStyle.Render("Recent expenses"))
			if len(home.Recent) == 0 {
				printLine(cmd, cli.InfoStyle.Render("  No expenses yet. Try 'spent quick 50'."))
				return nil
			}
			for _, r := range home.Recent {
				printf(cmd, "  %s  %-12s %s  %s\n",
					r.Expense.Date,
					m(r.Expense.Amount),
					cli.FormatCategory(r.Category),
					cli.SubtleStyle.Render(r.Expense.Note))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to summarize (YYYY-MM)")

	return cmd
}

func analyticsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Break the month down by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, snap, err := loadDashboard(cmd.Context(), month)
			if err != nil {
				return err
			}
			view := d.Analytics
			m := func(amount float64) string { return money(snap.Settings, amount) }

			printLine(cmd, cli.FormatTitle(cli.ChartIcon+" Analytics for "+monthLabel(d.Month)))
			printf(cmd, "  %-15s %s\n", "This month", cli.BoldStyle.Render(m(view.Comparison.Current)))
			printf(cmd, "  %-15s %s\n", "Last month", m(view.Comparison.Previous))
			printf(cmd, "  %-15s %s\n", "Change", cli.FormatChange(view.Comparison.ChangePercent))
			printf(cmd, "  %-15s %s (%d days left)\n", "Projected", m(view.Projection), view.DaysRemaining)

			printf(cmd, "\n%s\n", cli.BoldStyle.Render("By category"))
			if len(view.Breakdown) == 0 {
				printLine(cmd, cli.InfoStyle.Render("  Nothing spent this month."))
			}
			top := 0.0
			if len(view.Breakdown) > 0 {
				top = view.Breakdown[0].Amount
			}
			for _, row := range view.Breakdown {
				bar := lipgloss.NewStyle().Foreground(cli.CategoryColor(row.Category.Color)).Width(chartWidth)
				printf(cmd, "  %s %s %12s %5s\n",
					lipgloss.NewStyle().Width(18).Render(cli.FormatCategory(row.Category)),
					bar.Render(cli.Bar(row.Amount, top, chartWidth)),
					m(row.Amount),
					cli.FormatPercent(row.Percentage))
			}

			if len(view.Spikes) > 0 {
				printf(cmd, "\n%s\n", cli.BoldStyle.Render("Unusual days"))
				for _, s := range view.Spikes {
					printf(cmd, "  %s  %s  %s\n",
						s.Date,
						cli.WarningStyle.Render(m(s.Amount)),
						cli.SubtleStyle.Render(fmt.Sprintf("usual day: %s", m(s.Average))))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to analyze (YYYY-MM)")

	return cmd
}

func insightsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Plain-language observations about your spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, _, err := loadDashboard(cmd.Context(), month)
			if err != nil {
				return err
			}

			if len(d.Analytics.Insights) == 0 {
				printLine(cmd, cli.InfoStyle.Render("Nothing to report yet. Record a few expenses first."))
				return nil
			}

			var b strings.Builder
			for _, in := range d.Analytics.Insights {
				b.WriteString("• " + in.Text + "\n")
			}
			printLine(cmd, cli.RenderBox("Insights for "+monthLabel(d.Month), strings.TrimSuffix(b.String(), "\n")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to look at (YYYY-MM)")

	return cmd
}
