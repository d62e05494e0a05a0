package model

import "fmt"

// Theme is the preferred color scheme.
type Theme string

// Themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Settings are display and notification preferences. Nothing in analytics
// depends on them except currency formatting.
type Settings struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
	Theme          Theme  `json:"theme"`
	DailyReminder  bool   `json:"dailyReminder"`
	BudgetAlerts   bool   `json:"budgetAlerts"`
}

// DefaultSettings apply until the user changes something.
var DefaultSettings = Settings{
	Currency:       "INR",
	CurrencySymbol: "₹",
	Theme:          ThemeDark,
	DailyReminder:  true,
	BudgetAlerts:   true,
}

// Currency is a selectable display currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// SupportedCurrencies lists the currencies a user can pick.
var SupportedCurrencies = []Currency{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
}

// LookupCurrency finds a supported currency by code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// SettingsUpdate holds the settings to change.
type SettingsUpdate struct {
	Currency      *string
	Theme         *Theme
	DailyReminder *bool
	BudgetAlerts  *bool
}

// Apply merges the update into s. Changing the currency also changes the
// symbol; unknown currency codes are rejected.
func (u SettingsUpdate) Apply(s Settings) (Settings, error) {
	if u.Currency != nil {
		c, ok := LookupCurrency(*u.Currency)
		if !ok {
			return s, fmt.Errorf("unsupported currency %q", *u.Currency)
		}
		s.Currency = c.Code
		s.CurrencySymbol = c.Symbol
	}
	if u.Theme != nil {
		s.Theme = *u.Theme
	}
	if u.DailyReminder != nil {
		s.DailyReminder = *u.DailyReminder
	}
	if u.BudgetAlerts != nil {
		s.BudgetAlerts = *u.BudgetAlerts
	}
	return s, nil
}
