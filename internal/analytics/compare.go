package analytics

import "github.com/Veraticus/spent/internal/model"

// MonthComparison is this month's spend against the previous month's.
type MonthComparison struct {
	Current       float64
	Previous      float64
	ChangePercent float64
}

// MonthlyProjection extrapolates the current daily average to the whole of
// ref's month.
func MonthlyProjection(expenses []model.Expense, ref model.Date) float64 {
	return DailyAverage(expenses, ref) * float64(DaysInMonth(ref))
}

// CompareMonths compares ref's month with the calendar month before it.
// ChangePercent is 0 when the previous month has no spend: there is no
// baseline to compare against.
func CompareMonths(expenses []model.Expense, ref model.Date) MonthComparison {
	c := MonthComparison{
		Current:  MonthlyTotal(expenses, ref),
		Previous: MonthlyTotal(expenses, ref.AddMonths(-1)),
	}
	if c.Previous > 0 {
		c.ChangePercent = (c.Current - c.Previous) / c.Previous * 100
	}
	return c
}

// DaysRemaining is the number of days after ref left in its month.
func DaysRemaining(ref model.Date) int {
	return DaysInMonth(ref) - ref.Day
}
