// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/common"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultDatabasePath     = "$HOME/.local/share/spent/spent.db"
	DefaultRecentLimit      = 10
	DefaultQuickAddCategory = "Other"
	DefaultReminderSchedule = "0 9 * * *"
	DefaultSpikeThreshold   = 2.0
)

// DefaultQuickAddAmounts are the one-tap amounts offered by quick add.
var DefaultQuickAddAmounts = []float64{1, 5, 50, 0.1}

// Config is the typed view of the viper configuration.
type Config struct {
	DatabasePath     string
	QuickAddCategory string
	ReminderSchedule string
	OFXCategory      string
	LogLevel         string
	LogFormat        string
	QuickAddAmounts  []float64
	SpikeThreshold   float64
	RecentLimit      int
}

// SetDefaults registers the default for every key Load reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("analytics.spike_threshold", DefaultSpikeThreshold)
	v.SetDefault("analytics.recent_limit", DefaultRecentLimit)
	v.SetDefault("quick_add.amounts", DefaultQuickAddAmounts)
	v.SetDefault("quick_add.category", DefaultQuickAddCategory)
	v.SetDefault("reminder.schedule", DefaultReminderSchedule)
	v.SetDefault("import.ofx_category", DefaultQuickAddCategory)
}

// Load reads and validates the configuration.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	amounts, err := floatSlice(v.Get("quick_add.amounts"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: quick_add.amounts: %v", common.ErrInvalidConfig, err)
	}

	cfg := Config{
		DatabasePath:     ExpandPath(v.GetString("database.path")),
		LogLevel:         v.GetString("logging.level"),
		LogFormat:        v.GetString("logging.format"),
		SpikeThreshold:   v.GetFloat64("analytics.spike_threshold"),
		RecentLimit:      v.GetInt("analytics.recent_limit"),
		QuickAddAmounts:  amounts,
		QuickAddCategory: v.GetString("quick_add.category"),
		ReminderSchedule: v.GetString("reminder.schedule"),
		OFXCategory:      v.GetString("import.ofx_category"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if c.SpikeThreshold <= 0 {
		return fmt.Errorf("%w: analytics.spike_threshold must be positive, got %v", common.ErrInvalidConfig, c.SpikeThreshold)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("%w: analytics.recent_limit must not be negative", common.ErrInvalidConfig)
	}
	if c.QuickAddCategory == "" {
		return fmt.Errorf("%w: quick_add.category", common.ErrMissingConfig)
	}
	for _, amount := range c.QuickAddAmounts {
		if amount <= 0 {
			return fmt.Errorf("%w: quick_add.amounts must be positive, got %v", common.ErrInvalidConfig, amount)
		}
	}
	if _, err := cron.ParseStandard(c.ReminderSchedule); err != nil {
		return fmt.Errorf("%w: reminder.schedule: %v", common.ErrInvalidConfig, err)
	}
	return nil
}

// floatSlice accepts a list from a config file, the defaults, or a
// comma-separated environment variable.
func floatSlice(raw any) ([]float64, error) {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []float64:
		return append([]float64(nil), v...), nil
	case []any:
		items = v
	case string:
		for _, field := range strings.Split(v, ",") {
			if field = strings.TrimSpace(field); field != "" {
				items = append(items, field)
			}
		}
	default:
		items = cast.ToSlice(v)
	}

	amounts := make([]float64, 0, len(items))
	for _, item := range items {
		f, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, f)
	}
	return amounts, nil
}
