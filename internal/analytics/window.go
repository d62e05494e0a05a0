// Package analytics turns expense records and budgets into totals,
// comparisons, budget statuses, spikes and insight text.
//
// Everything here is a pure function of its arguments: nothing reads the
// clock, the store or the configuration, and input slices are never
// modified. The reference date is always explicit.
package analytics

import (
	"sort"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// DailyAmount is the spend recorded on one day of a month.
type DailyAmount struct {
	Day    int
	Amount float64
}

// CategoryShare is a category's spend in a month and its share of the total.
type CategoryShare struct {
	Category   string
	Amount     float64
	Percentage float64
}

// total accumulates amounts in decimal so that many small fractional amounts
// add up exactly.
type total struct {
	sum decimal.Decimal
}

func (t *total) add(amount float64) {
	t.sum = t.sum.Add(decimal.NewFromFloat(amount))
}

func (t total) float() float64 {
	f, _ := t.sum.Float64()
	return f
}

func inMonth(e model.Expense, ref model.Date) bool {
	return e.Date.SameMonth(ref)
}

// DaysInMonth returns the number of days in ref's month.
func DaysInMonth(ref model.Date) int {
	return ref.DaysInMonth()
}

// MonthlyTotal sums the expenses dated in ref's calendar month.
func MonthlyTotal(expenses []model.Expense, ref model.Date) float64 {
	return monthlyTotalWhere(expenses, ref, func(model.Expense) bool { return true })
}

func monthlyTotalWhere(expenses []model.Expense, ref model.Date, keep func(model.Expense) bool) float64 {
	var t total
	for _, e := range expenses {
		if inMonth(e, ref) && keep(e) {
			t.add(e.Amount)
		}
	}
	return t.float()
}

// WeekBounds returns the half-open week [start, end) containing ref. Weeks
// start on Sunday.
func WeekBounds(ref model.Date) (start, end model.Date) {
	start = ref.AddDays(-int(ref.Weekday()))
	return start, start.AddDays(7)
}

// WeeklyTotal sums the expenses dated in the week containing ref.
func WeeklyTotal(expenses []model.Expense, ref model.Date) float64 {
	start, end := WeekBounds(ref)

	var t total
	for _, e := range expenses {
		if !e.Date.Before(start) && e.Date.Before(end) {
			t.add(e.Amount)
		}
	}
	return t.float()
}

// DailyBreakdown returns one entry per day of ref's month, days with no
// spend included, ordered by day.
func DailyBreakdown(expenses []model.Expense, ref model.Date) []DailyAmount {
	days := DaysInMonth(ref)
	totals := make([]total, days+1)

	for _, e := range expenses {
		if inMonth(e, ref) && e.Date.Day >= 1 && e.Date.Day <= days {
			totals[e.Date.Day].add(e.Amount)
		}
	}

	breakdown := make([]DailyAmount, days)
	for i := range breakdown {
		breakdown[i] = DailyAmount{Day: i + 1, Amount: totals[i+1].float()}
	}
	return breakdown
}

// DailyAverage divides the month-to-date total by ref's day of month. It is
// the calendar day, not the number of days with spend.
func DailyAverage(expenses []model.Expense, ref model.Date) float64 {
	if ref.Day <= 0 {
		return 0
	}
	return MonthlyTotal(expenses, ref) / float64(ref.Day)
}

// CategoryBreakdown totals ref's month by category, largest first. Ties keep
// the order in which categories first appear in expenses.
func CategoryBreakdown(expenses []model.Expense, ref model.Date) []CategoryShare {
	var (
		order  []string
		totals = make(map[string]*total)
		all    total
	)

	for _, e := range expenses {
		if !inMonth(e, ref) {
			continue
		}
		t, ok := totals[e.Category]
		if !ok {
			t = &total{}
			totals[e.Category] = t
			order = append(order, e.Category)
		}
		t.add(e.Amount)
		all.add(e.Amount)
	}

	grand := all.float()
	shares := make([]CategoryShare, 0, len(order))
	for _, name := range order {
		amount := totals[name].float()
		share := CategoryShare{Category: name, Amount: amount}
		if grand > 0 {
			share.Percentage = amount * 100 / grand
		}
		shares = append(shares, share)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount > shares[j].Amount
	})
	return shares
}

// RecentExpenses returns up to n leading expenses of a newest-first list.
func RecentExpenses(expenses []model.Expense, n int) []model.Expense {
	if n <= 0 {
		return nil
	}
	if n > len(expenses) {
		n = len(expenses)
	}
	recent := make([]model.Expense, n)
	copy(recent, expenses[:n])
	return recent
}
