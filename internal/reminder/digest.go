// Package reminder builds the daily spending digest and runs it on a cron
// schedule.
package reminder

import (
	"fmt"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/model"
)

// Digest summarizes a day's spending for the reminder.
type Digest struct {
	Date          model.Date
	Symbol        string
	Alerts        []analytics.BudgetStatus
	TodayTotal    float64
	TodayCount    int
	MonthTotal    float64
	AlertsEnabled bool
}

// BuildDigest summarizes the snapshot as of today. Budget alerts are only
// collected when the user has them switched on.
func BuildDigest(snap *model.Snapshot, today model.Date) Digest {
	d := Digest{
		Date:          today,
		Symbol:        snap.Settings.CurrencySymbol,
		MonthTotal:    analytics.MonthlyTotal(snap.Expenses, today),
		AlertsEnabled: snap.Settings.BudgetAlerts,
	}
	if d.Symbol == "" {
		d.Symbol = model.DefaultSettings.CurrencySymbol
	}

	for _, e := range snap.Expenses {
		if e.Date == today {
			d.TodayCount++
		}
	}
	if days := analytics.DailyBreakdown(snap.Expenses, today); today.Day >= 1 && today.Day <= len(days) {
		d.TodayTotal = days[today.Day-1].Amount
	}

	if d.AlertsEnabled {
		d.Alerts = analytics.Alerts(analytics.BudgetStatuses(snap.Expenses, snap.Budgets, today))
	}
	return d
}

// Lines renders the digest as plain sentences, one per line. money formats
// amounts.
func (d Digest) Lines(money func(symbol string, amount float64) string) []string {
	var lines []string

	if d.TodayCount == 0 {
		lines = append(lines, "No expenses logged today. Don't forget to track your spending!")
	} else {
		noun := "expense"
		if d.TodayCount != 1 {
			noun = "expenses"
		}
		lines = append(lines, fmt.Sprintf("Today: %s across %d %s", money(d.Symbol, d.TodayTotal), d.TodayCount, noun))
	}
	lines = append(lines, fmt.Sprintf("This month so far: %s", money(d.Symbol, d.MonthTotal)))

	for _, a := range d.Alerts {
		lines = append(lines, fmt.Sprintf("Budget %s is %s: %s of %s (%.0f%%)",
			a.Scope.String(), a.Status, money(d.Symbol, a.Spent), money(d.Symbol, a.Budget), a.Percentage))
	}
	return lines
}
