package analytics

import (
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSpikes(t *testing.T) {
	expenses := []model.Expense{
		expense(10, "2024-03-01", "Food"),
		expense(10, "2024-03-02", "Food"),
		expense(10, "2024-03-03", "Food"),
		expense(60, "2024-03-04", "Shopping"),
		expense(40, "2024-03-04", "Shopping"),
		expense(900, "2024-02-04", "Shopping"),
	}

	spikes := DetectSpikes(expenses, day("2024-03-20"), DefaultSpikeThreshold)
	require.Len(t, spikes, 1)
	assert.Equal(t, "2024-03-04", spikes[0].Date.String())
	assert.Equal(t, 100.0, spikes[0].Amount)
	assert.Equal(t, 32.5, spikes[0].Average)
}

func TestDetectSpikes_ZeroDaysDoNotLowerAverage(t *testing.T) {
	// Over all 31 days the mean would be ~3.5 and every active day a spike.
	expenses := []model.Expense{
		expense(50, "2024-03-01", "Food"),
		expense(60, "2024-03-20", "Food"),
	}

	assert.Empty(t, DetectSpikes(expenses, day("2024-03-20"), 2))
}

func TestDetectSpikes_AllEqual(t *testing.T) {
	var expenses []model.Expense
	for _, d := range []string{"2024-03-01", "2024-03-05", "2024-03-09", "2024-03-30"} {
		expenses = append(expenses, expense(25, d, "Food"))
	}

	assert.Empty(t, DetectSpikes(expenses, day("2024-03-30"), 2))
}

func TestDetectSpikes_NoSpend(t *testing.T) {
	assert.Empty(t, DetectSpikes(nil, day("2024-03-30"), 2))
}

func TestDetectSpikes_Threshold(t *testing.T) {
	expenses := []model.Expense{
		expense(10, "2024-03-01", "Food"),
		expense(20, "2024-03-02", "Food"),
		expense(30, "2024-03-03", "Food"),
	}
	ref := day("2024-03-03")

	// mean 20: with threshold 1 only the 30 day exceeds it
	spikes := DetectSpikes(expenses, ref, 1)
	require.Len(t, spikes, 1)
	assert.Equal(t, 3, spikes[0].Date.Day)

	assert.Equal(t, DetectSpikes(expenses, ref, DefaultSpikeThreshold), DetectSpikes(expenses, ref, 0))
}

func TestDetectSpikes_Ordered(t *testing.T) {
	expenses := []model.Expense{
		expense(500, "2024-03-20", "Food"),
		expense(1, "2024-03-01", "Food"),
		expense(1, "2024-03-02", "Food"),
		expense(1, "2024-03-03", "Food"),
		expense(1, "2024-03-04", "Food"),
		expense(1, "2024-03-05", "Food"),
		expense(1, "2024-03-06", "Food"),
		expense(1, "2024-03-07", "Food"),
		expense(400, "2024-03-10", "Food"),
	}

	spikes := DetectSpikes(expenses, day("2024-03-25"), 2)
	require.Len(t, spikes, 2)
	assert.Equal(t, 10, spikes[0].Date.Day)
	assert.Equal(t, 20, spikes[1].Date.Day)
}
