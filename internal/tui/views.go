package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	minContentWidth = 40
	labelWidth      = 16
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.tab {
	case TabAnalytics:
		body = m.renderAnalytics()
	case TabBudget:
		body = m.renderBudget()
	default:
		body = m.renderHome()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
}

func (m Model) contentWidth() int {
	return max(m.width-4, minContentWidth)
}

// renderLoading renders the screen shown until the first load finishes.
func (m Model) renderLoading() string {
	var content string
	if m.lastError != nil {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(m.theme.Error).Render(cli.ErrorIcon+" "+m.lastError.Error()),
			m.theme.Faint.Render("Press r to retry or q to quit."),
		)
	} else {
		content = m.spinner.View() + " " + m.theme.Normal.Render("Loading expenses...")
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, int(tabCount))
	for t := TabHome; t < tabCount; t++ {
		style := m.theme.InactiveTab
		if t == m.tab {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}

	month := m.dashboard.Month
	title := m.theme.Bold.Render(cli.MoneyIcon + " Spent")
	period := m.theme.Faint.Render(fmt.Sprintf("%s %d", month.Month, month.Year))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title+"  "+period,
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
		"",
	)
}

func (m Model) renderStatusBar() string {
	switch {
	case m.lastError != nil:
		return lipgloss.NewStyle().Foreground(m.theme.Error).Render(cli.ErrorIcon + " " + m.lastError.Error())
	case m.loading:
		return m.spinner.View() + " " + m.theme.StatusBar.Render("Refreshing...")
	default:
		return m.theme.StatusBar.Render(fmt.Sprintf("%d expenses", len(m.snapshot.Expenses)))
	}
}

func (m Model) money(amount float64) string {
	return cli.FormatMoney(m.dashboard.Symbol, amount)
}

func (m Model) stat(label, value string) string {
	return m.theme.Faint.Width(labelWidth).Render(label) + m.theme.Bold.Render(value)
}

func (m Model) change(p float64) string {
	switch {
	case p > 0:
		return lipgloss.NewStyle().Foreground(m.theme.Error).Render(cli.TrendUp + " " + cli.FormatPercent(p) + " vs last month")
	case p < 0:
		return lipgloss.NewStyle().Foreground(m.theme.Success).Render(cli.TrendDown + " " + cli.FormatPercent(-p) + " vs last month")
	default:
		return m.theme.Faint.Render("no change vs last month")
	}
}

func (m Model) category(c model.Category) string {
	return lipgloss.NewStyle().
		Foreground(cli.CategoryColor(c.Color)).
		Render(c.Icon + " " + c.Name)
}

func (m Model) renderHome() string {
	home := m.dashboard.Home

	summary := lipgloss.JoinVertical(
		lipgloss.Left,
		m.stat("This month", m.money(home.Comparison.Current))+"  "+m.change(home.Comparison.ChangePercent),
		m.stat("This week", m.money(home.WeekTotal)),
		m.stat("Daily average", m.money(home.DailyAverage)),
		m.stat("Projected", m.money(home.Projection)),
	)

	sections := []string{
		m.theme.Panel.Width(m.contentWidth()).Render(summary),
		m.theme.Subtitle.Render("Daily spending"),
		m.theme.Bar.Render(sparkline(home.Daily, home.MaxDaily)),
		m.theme.Faint.Render(dayAxis(len(home.Daily))),
		"",
		m.theme.Subtitle.Render("Recent expenses"),
	}

	if len(home.Recent) == 0 {
		sections = append(sections, m.theme.Faint.Render("No expenses yet. Add one with `spent quick <amount>`."))
	}
	for _, r := range home.Recent {
		sections = append(sections, m.recentLine(r))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) recentLine(r viewmodel.RecentExpense) string {
	note := r.Expense.Note
	if note == "" {
		note = "-"
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(18).Render(m.category(r.Category)),
		m.theme.Faint.Width(12).Render(r.Expense.Date.String()),
		m.theme.Bold.Width(12).Align(lipgloss.Right).Render(m.money(r.Expense.Amount)),
		"  ",
		m.theme.Normal.Render(note),
	)
}

func (m Model) renderAnalytics() string {
	view := m.dashboard.Analytics

	comparison := lipgloss.JoinVertical(
		lipgloss.Left,
		m.stat("This month", m.money(view.Comparison.Current)),
		m.stat("Last month", m.money(view.Comparison.Previous)),
		m.stat("Change", m.change(view.Comparison.ChangePercent)),
		m.stat("Projected", m.money(view.Projection)),
		m.stat("Days remaining", fmt.Sprintf("%d", view.DaysRemaining)),
	)

	sections := []string{
		m.theme.Panel.Width(m.contentWidth()).Render(comparison),
		m.theme.Subtitle.Render(cli.ChartIcon + " By category"),
	}

	if len(view.Breakdown) == 0 {
		sections = append(sections, m.theme.Faint.Render("Nothing spent this month."))
	}
	barWidth := max(m.contentWidth()-48, 10)
	var top float64
	if len(view.Breakdown) > 0 {
		top = view.Breakdown[0].Amount
	}
	for _, row := range view.Breakdown {
		color := lipgloss.NewStyle().Foreground(cli.CategoryColor(row.Category.Color))
		sections = append(sections, lipgloss.JoinHorizontal(
			lipgloss.Top,
			lipgloss.NewStyle().Width(18).Render(m.category(row.Category)),
			m.theme.Bold.Width(12).Align(lipgloss.Right).Render(m.money(row.Amount)),
			m.theme.Faint.Width(6).Align(lipgloss.Right).Render(cli.FormatPercent(row.Percentage)),
			"  ",
			color.Render(cli.Bar(row.Amount, top, barWidth)),
		))
	}

	if len(view.Spikes) > 0 {
		sections = append(sections, "", m.theme.Subtitle.Render("Unusual days"))
		for _, s := range view.Spikes {
			sections = append(sections, fmt.Sprintf("%s  %s  %s",
				m.theme.Faint.Render(s.Date.String()),
				lipgloss.NewStyle().Foreground(m.theme.Warning).Render(m.money(s.Amount)),
				m.theme.Faint.Render(fmt.Sprintf("(%.1fx the usual %s)", s.Amount/s.Average, m.money(s.Average))),
			))
		}
	}

	if len(view.Insights) > 0 {
		sections = append(sections, "", m.theme.Subtitle.Render("Insights"))
		for _, in := range view.Insights {
			sections = append(sections, m.theme.Normal.Render("• "+in.Text))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderBudget() string {
	view := m.dashboard.Budget
	if !view.HasBudgets() {
		return m.theme.Faint.Render("No budgets set. Add one with `spent budget set <amount>`.")
	}

	var sections []string
	if view.Overall != nil {
		sections = append(sections,
			m.theme.Subtitle.Render("Overall"),
			m.budgetLine("Monthly", *view.Overall),
			"",
		)
	}

	if len(view.Categories) > 0 {
		sections = append(sections, m.theme.Subtitle.Render("Categories"))
		for _, row := range view.Categories {
			sections = append(sections, m.budgetLine(m.category(row.Category), row.BudgetStatus))
		}
		sections = append(sections, "")
	}

	if len(view.Weekly) > 0 {
		sections = append(sections, m.theme.Subtitle.Render("Weekly"))
		for _, b := range view.Weekly {
			sections = append(sections, fmt.Sprintf("%s  %s",
				lipgloss.NewStyle().Width(18).Render(b.Scope.String()),
				m.theme.Bold.Render(m.money(b.Amount)),
			))
		}
		sections = append(sections, m.theme.Faint.Render("Weekly budgets are stored but not tracked."))
	}

	if alerts := view.Alerts(); len(alerts) > 0 {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(m.theme.Warning).Render(
			fmt.Sprintf("%s %d budget(s) need attention", cli.BellIcon, len(alerts)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) budgetLine(label string, s analytics.BudgetStatus) string {
	bar := progress.New(
		progress.WithSolidFill(string(m.theme.StatusColor(s.Status))),
		progress.WithWidth(max(m.contentWidth()-60, 10)),
		progress.WithoutPercentage(),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(18).Render(label),
		bar.ViewAs(math.Min(s.Percentage/100, 1)),
		"  ",
		m.theme.Bold.Render(m.money(s.Spent)+" / "+m.money(s.Budget)),
		"  ",
		m.theme.Faint.Width(6).Align(lipgloss.Right).Render(cli.FormatPercent(s.Percentage)),
		"  ",
		m.theme.Status(s.Status),
	)
}

// sparkline draws one block per day scaled so that top is the tallest.
// Days without spend are blank.
func sparkline(days []analytics.DailyAmount, top float64) string {
	var b strings.Builder
	for _, d := range days {
		if d.Amount <= 0 || top <= 0 {
			b.WriteRune(' ')
			continue
		}
		level := int(math.Ceil(d.Amount/top*float64(len(sparkLevels)))) - 1
		level = min(max(level, 0), len(sparkLevels)-1)
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}

// dayAxis labels the first and last day under a sparkline.
func dayAxis(days int) string {
	if days < 2 {
		return ""
	}
	last := fmt.Sprintf("%d", days)
	return "1" + strings.Repeat(" ", max(days-1-len(last), 1)) + last
}
