package analytics

import (
	"fmt"
	"math"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// InsightKind identifies which rule produced an insight.
type InsightKind string

// Insight kinds, in the order they are evaluated.
const (
	InsightMonthChange  InsightKind = "month_change"
	InsightTopCategory  InsightKind = "top_category"
	InsightBudgetPace   InsightKind = "budget_pace"
	InsightSpikes       InsightKind = "spikes"
	InsightDailyAverage InsightKind = "daily_average"
)

// Insight is one short sentence about the spending history.
type Insight struct {
	Kind InsightKind
	Text string
}

// InsightOptions tune GenerateInsights.
type InsightOptions struct {
	CurrencySymbol string  // defaults to the default settings symbol
	SpikeThreshold float64 // defaults to DefaultSpikeThreshold
}

// GenerateInsights evaluates each insight rule against ref in a fixed order
// and keeps those whose condition holds. Rules are independent of each other.
func GenerateInsights(expenses []model.Expense, budgets []model.Budget, ref model.Date, opts InsightOptions) []Insight {
	symbol := opts.CurrencySymbol
	if symbol == "" {
		symbol = model.DefaultSettings.CurrencySymbol
	}

	var insights []Insight
	add := func(kind InsightKind, format string, args ...any) {
		insights = append(insights, Insight{Kind: kind, Text: fmt.Sprintf(format, args...)})
	}

	comparison := CompareMonths(expenses, ref)
	switch {
	case comparison.ChangePercent > 0:
		add(InsightMonthChange, "You spent %s%% more this month compared to last month", whole(comparison.ChangePercent))
	case comparison.ChangePercent < 0:
		add(InsightMonthChange, "Great job! You spent %s%% less this month", whole(comparison.ChangePercent))
	}

	if breakdown := CategoryBreakdown(expenses, ref); len(breakdown) > 0 {
		top := breakdown[0]
		add(InsightTopCategory, "%s is your highest spending category at %s%%", top.Category, whole(top.Percentage))
	}

	overall, ok := OverallStatus(BudgetStatuses(expenses, budgets, ref))
	if ok && MonthlyProjection(expenses, ref) > overall.Budget {
		add(InsightBudgetPace, "At current pace, you may exceed your budget in %d days", DaysRemaining(ref))
	}

	if spikes := DetectSpikes(expenses, ref, opts.SpikeThreshold); len(spikes) > 0 {
		plural := ""
		if len(spikes) > 1 {
			plural = "s"
		}
		add(InsightSpikes, "Detected %d unusual spending spike%s this month", len(spikes), plural)
	}

	if avg := DailyAverage(expenses, ref); avg > 0 {
		add(InsightDailyAverage, "Your average daily spending is %s%s", symbol, whole(avg))
	}

	return insights
}

// whole renders the magnitude of x with no fraction digits, rounding halves
// away from zero (12.5 is "13").
func whole(x float64) string {
	return decimal.NewFromFloat(math.Abs(x)).Round(0).String()
}

// Texts returns just the sentences of insights, in order.
func Texts(insights []Insight) []string {
	texts := make([]string, len(insights))
	for i, in := range insights {
		texts[i] = in.Text
	}
	return texts
}
