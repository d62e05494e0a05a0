package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/spent/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/.local/share/spent/spent.db", cfg.DatabasePath)
	assert.Equal(t, DefaultSpikeThreshold, cfg.SpikeThreshold)
	assert.Equal(t, DefaultRecentLimit, cfg.RecentLimit)
	assert.Equal(t, DefaultQuickAddAmounts, cfg.QuickAddAmounts)
	assert.Equal(t, "Other", cfg.QuickAddCategory)
	assert.Equal(t, "0 9 * * *", cfg.ReminderSchedule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("database.path", "/tmp/spent-test.db")
	v.Set("analytics.spike_threshold", 3.5)
	v.Set("quick_add.amounts", "2, 20,200")
	v.Set("quick_add.category", "Food")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/spent-test.db", cfg.DatabasePath)
	assert.Equal(t, 3.5, cfg.SpikeThreshold)
	assert.Equal(t, []float64{2, 20, 200}, cfg.QuickAddAmounts)
	assert.Equal(t, "Food", cfg.QuickAddCategory)
}

func TestLoadQuickAddAmountsFromFileList(t *testing.T) {
	v := viper.New()
	v.Set("quick_add.amounts", []any{10, "2.5", 7.25})

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 2.5, 7.25}, cfg.QuickAddAmounts)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "zero spike threshold", key: "analytics.spike_threshold", value: 0},
		{name: "negative recent limit", key: "analytics.recent_limit", value: -1},
		{name: "bad cron schedule", key: "reminder.schedule", value: "every morning"},
		{name: "negative quick amount", key: "quick_add.amounts", value: "5,-1"},
		{name: "non-numeric quick amount", key: "quick_add.amounts", value: "five"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadRejectsMissingCategory(t *testing.T) {
	v := viper.New()
	v.Set("quick_add.category", "")

	_, err := Load(v)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("SPENT_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: "/home/tester"},
		{input: "~/spent.db", want: "/home/tester/spent.db"},
		{input: "$SPENT_DIR/spent.db", want: "/data/spent.db"},
		{input: "/abs/spent.db", want: "/abs/spent.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data", "spent.db")

	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureParentDir(":memory:"))
}
