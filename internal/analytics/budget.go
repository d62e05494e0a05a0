package analytics

import "github.com/Veraticus/spent/internal/model"

// Status is how close spending is to a budget.
type Status string

// Statuses in increasing severity.
const (
	StatusSafe     Status = "safe"
	StatusWarning  Status = "warning"
	StatusDanger   Status = "danger"
	StatusExceeded Status = "exceeded"
)

// Lower bounds, inclusive, of the non-safe statuses in percent of budget.
const (
	WarningThreshold  = 75.0
	DangerThreshold   = 90.0
	ExceededThreshold = 100.0
)

// Severity orders statuses from 0 (safe) to 3 (exceeded).
func (s Status) Severity() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusDanger:
		return 2
	case StatusExceeded:
		return 3
	default:
		return 0
	}
}

// BudgetStatus is one monthly budget evaluated against ref's month.
type BudgetStatus struct {
	Scope      model.BudgetScope
	BudgetID   string
	Status     Status
	Budget     float64
	Spent      float64
	Percentage float64
}

// Classify maps a percentage of budget used to a status.
func Classify(percentage float64) Status {
	switch {
	case percentage >= ExceededThreshold:
		return StatusExceeded
	case percentage >= DangerThreshold:
		return StatusDanger
	case percentage >= WarningThreshold:
		return StatusWarning
	default:
		return StatusSafe
	}
}

// BudgetStatuses evaluates every monthly budget, in input order, against the
// spend in ref's month. Weekly budgets are not evaluated.
func BudgetStatuses(expenses []model.Expense, budgets []model.Budget, ref model.Date) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if b.Period != model.PeriodMonthly {
			continue
		}
		statuses = append(statuses, evaluate(expenses, b, ref))
	}
	return statuses
}

func evaluate(expenses []model.Expense, b model.Budget, ref model.Date) BudgetStatus {
	spent := monthlyTotalWhere(expenses, ref, b.Scope.Matches)

	var percentage float64
	if b.Amount > 0 {
		percentage = spent * 100 / b.Amount
	}

	return BudgetStatus{
		BudgetID:   b.ID,
		Scope:      b.Scope,
		Budget:     b.Amount,
		Spent:      spent,
		Percentage: percentage,
		Status:     Classify(percentage),
	}
}

// OverallStatus returns the first overall-scope status, if there is one.
func OverallStatus(statuses []BudgetStatus) (BudgetStatus, bool) {
	for _, s := range statuses {
		if s.Scope.IsOverall() {
			return s, true
		}
	}
	return BudgetStatus{}, false
}

// Alerts returns the statuses that are not safe.
func Alerts(statuses []BudgetStatus) []BudgetStatus {
	var alerts []BudgetStatus
	for _, s := range statuses {
		if s.Status != StatusSafe {
			alerts = append(alerts, s)
		}
	}
	return alerts
}
