// Package viewmodel computes the data behind each dashboard screen. It holds
// no rendering code, so the same views back the interactive dashboard and
// the plain-text commands.
package viewmodel

import (
	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/model"
)

// DefaultRecentLimit is how many expenses the home screen lists.
const DefaultRecentLimit = 10

// Options tune Build.
type Options struct {
	RecentLimit    int
	SpikeThreshold float64
}

// Dashboard is everything the three dashboard screens show for one month.
type Dashboard struct {
	Month     model.Date
	Symbol    string
	Home      HomeView
	Analytics AnalyticsView
	Budget    BudgetView
}

// HomeView is the month at a glance.
type HomeView struct {
	Comparison   analytics.MonthComparison
	Daily        []analytics.DailyAmount
	Recent       []RecentExpense
	WeekTotal    float64
	DailyAverage float64
	Projection   float64
	MaxDaily     float64
}

// RecentExpense pairs an expense with the category used to display it.
type RecentExpense struct {
	Expense  model.Expense
	Category model.Category
}

// AnalyticsView is the month broken down by category, with spikes and
// insights.
type AnalyticsView struct {
	Comparison    analytics.MonthComparison
	Breakdown     []CategoryRow
	Spikes        []analytics.Spike
	Insights      []analytics.Insight
	Projection    float64
	DaysRemaining int
}

// CategoryRow is one line of the category breakdown.
type CategoryRow struct {
	Category model.Category
	analytics.CategoryShare
}

// BudgetView lists every budget with its evaluation.
type BudgetView struct {
	Overall    *analytics.BudgetStatus
	Categories []BudgetRow
	Weekly     []model.Budget
}

// BudgetRow is a category budget and the category it applies to.
type BudgetRow struct {
	Category model.Category
	analytics.BudgetStatus
}

// HasBudgets reports whether any budget exists.
func (v BudgetView) HasBudgets() bool {
	return v.Overall != nil || len(v.Categories) > 0 || len(v.Weekly) > 0
}

// Alerts returns the evaluated budgets that are not safe.
func (v BudgetView) Alerts() []analytics.BudgetStatus {
	statuses := make([]analytics.BudgetStatus, 0, len(v.Categories)+1)
	if v.Overall != nil {
		statuses = append(statuses, *v.Overall)
	}
	for _, row := range v.Categories {
		statuses = append(statuses, row.BudgetStatus)
	}
	return analytics.Alerts(statuses)
}

// Build computes the dashboard for the month containing ref.
func Build(snap model.Snapshot, ref model.Date, opts Options) Dashboard {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}

	symbol := snap.Settings.CurrencySymbol
	if symbol == "" {
		symbol = model.DefaultSettings.CurrencySymbol
	}
	index := snap.CategoryIndex()

	return Dashboard{
		Month:     ref,
		Symbol:    symbol,
		Home:      buildHome(snap, index, ref, opts.RecentLimit),
		Analytics: buildAnalytics(snap, index, ref, symbol, opts.SpikeThreshold),
		Budget:    buildBudget(snap, index, ref),
	}
}

func buildHome(snap model.Snapshot, index model.CategoryIndex, ref model.Date, limit int) HomeView {
	view := HomeView{
		Comparison:   analytics.CompareMonths(snap.Expenses, ref),
		WeekTotal:    analytics.WeeklyTotal(snap.Expenses, ref),
		DailyAverage: analytics.DailyAverage(snap.Expenses, ref),
		Projection:   analytics.MonthlyProjection(snap.Expenses, ref),
		Daily:        analytics.DailyBreakdown(snap.Expenses, ref),
	}
	for _, d := range view.Daily {
		if d.Amount > view.MaxDaily {
			view.MaxDaily = d.Amount
		}
	}

	for _, e := range analytics.RecentExpenses(snap.Expenses, limit) {
		view.Recent = append(view.Recent, RecentExpense{
			Expense:  e,
			Category: index.Lookup(e.Category),
		})
	}
	return view
}

func buildAnalytics(snap model.Snapshot, index model.CategoryIndex, ref model.Date, symbol string, threshold float64) AnalyticsView {
	view := AnalyticsView{
		Comparison:    analytics.CompareMonths(snap.Expenses, ref),
		Projection:    analytics.MonthlyProjection(snap.Expenses, ref),
		DaysRemaining: analytics.DaysRemaining(ref),
		Spikes:        analytics.DetectSpikes(snap.Expenses, ref, threshold),
		Insights: analytics.GenerateInsights(snap.Expenses, snap.Budgets, ref, analytics.InsightOptions{
			CurrencySymbol: symbol,
			SpikeThreshold: threshold,
		}),
	}
	for _, share := range analytics.CategoryBreakdown(snap.Expenses, ref) {
		view.Breakdown = append(view.Breakdown, CategoryRow{
			Category:      index.Lookup(share.Category),
			CategoryShare: share,
		})
	}
	return view
}

func buildBudget(snap model.Snapshot, index model.CategoryIndex, ref model.Date) BudgetView {
	var view BudgetView
	for _, status := range analytics.BudgetStatuses(snap.Expenses, snap.Budgets, ref) {
		name, ok := status.Scope.Category()
		if !ok {
			if view.Overall == nil {
				s := status
				view.Overall = &s
			}
			continue
		}
		view.Categories = append(view.Categories, BudgetRow{
			Category:     index.Lookup(name),
			BudgetStatus: status,
		})
	}
	for _, b := range snap.Budgets {
		if b.Period == model.PeriodWeekly {
			view.Weekly = append(view.Weekly, b)
		}
	}
	return view
}
