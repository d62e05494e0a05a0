package cli

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatMoney renders an amount with the currency symbol prefixed, grouped
// the Indian way and with at most two fraction digits.
func FormatMoney(symbol string, amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + moneyPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

// FormatPercent renders a percentage with no fraction digits.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// FormatChange renders a month-over-month change with a trend arrow.
func FormatChange(p float64) string {
	switch {
	case p > 0:
		return ErrorStyle.Render(TrendUp + " " + FormatPercent(p))
	case p < 0:
		return SuccessStyle.Render(TrendDown + " " + FormatPercent(-p))
	default:
		return SubtleStyle.Render("no change")
	}
}

// Bar draws a horizontal bar of width cells scaled so that max fills it.
func Bar(value, max float64, width int) string {
	if max <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(value / max * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}
