package analytics

import "github.com/Veraticus/spent/internal/model"

// DefaultSpikeThreshold flags days above twice the active-day mean.
const DefaultSpikeThreshold = 2.0

// Spike is a day whose spend stands out from the rest of its month.
type Spike struct {
	Date    model.Date
	Amount  float64
	Average float64
}

// DetectSpikes flags the days of ref's month whose spend is greater than
// threshold times the mean of days with any spend. Days without spend are
// left out of the mean. A threshold of zero or less means
// DefaultSpikeThreshold.
func DetectSpikes(expenses []model.Expense, ref model.Date, threshold float64) []Spike {
	if threshold <= 0 {
		threshold = DefaultSpikeThreshold
	}

	daily := DailyBreakdown(expenses, ref)

	var (
		sum    total
		active int
	)
	for _, d := range daily {
		if d.Amount > 0 {
			sum.add(d.Amount)
			active++
		}
	}
	if active == 0 {
		return nil
	}
	average := sum.float() / float64(active)

	var spikes []Spike
	for _, d := range daily {
		if d.Amount > average*threshold {
			spikes = append(spikes, Spike{
				Date:    model.Date{Year: ref.Year, Month: ref.Month, Day: d.Day},
				Amount:  d.Amount,
				Average: average,
			})
		}
	}
	return spikes
}
