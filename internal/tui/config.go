package tui

import (
	"time"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/Veraticus/spent/internal/tui/viewmodel"
)

// Config holds TUI configuration.
type Config struct {
	Theme          *themes.Theme
	Today          func() model.Date
	Width          int
	Height         int
	RecentLimit    int
	SpikeThreshold float64
	LoadTimeout    time.Duration
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Today:       model.Today,
		Width:       80,
		Height:      24,
		RecentLimit: viewmodel.DefaultRecentLimit,
		LoadTimeout: 10 * time.Second,
	}
}

// WithTheme forces a theme. Without it the theme follows the stored
// settings.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = &theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithToday sets the clock that decides the current month.
func WithToday(today func() model.Date) Option {
	return func(c *Config) {
		c.Today = today
	}
}

// WithRecentLimit sets how many recent expenses the home tab lists.
func WithRecentLimit(n int) Option {
	return func(c *Config) {
		c.RecentLimit = n
	}
}

// WithSpikeThreshold sets the spike detection multiplier.
func WithSpikeThreshold(threshold float64) Option {
	return func(c *Config) {
		c.SpikeThreshold = threshold
	}
}
