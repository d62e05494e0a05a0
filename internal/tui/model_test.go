package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/testutil"
	"github.com/Veraticus/spent/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	snap  *model.Snapshot
	err   error
	calls int
}

func (f *fakeLoader) Snapshot(_ context.Context) (*model.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func testSnapshot() *model.Snapshot {
	date := model.MustParseDate
	return &model.Snapshot{
		Expenses: []model.Expense{
			{ID: "3", Amount: 300, Category: "Food", Note: "Dinner party", Date: date("2024-03-10")},
			{ID: "2", Amount: 50, Category: "Transport", Date: date("2024-03-02")},
			{ID: "1", Amount: 240, Category: "Food", Date: date("2024-02-05")},
		},
		Categories: model.DefaultCategories,
		Budgets: []model.Budget{
			{ID: "b1", Scope: model.OverallScope(), Amount: 380, Period: model.PeriodMonthly},
			{ID: "b2", Scope: model.CategoryScope("Transport"), Amount: 100, Period: model.PeriodWeekly},
		},
		Settings: model.DefaultSettings,
	}
}

func newTestModel(t *testing.T, loader Loader) Model {
	t.Helper()
	cfg := defaultConfig()
	WithTheme(themes.Dark)(&cfg)
	WithSize(120, 40)(&cfg)
	WithToday(func() model.Date { return model.MustParseDate("2024-03-15") })(&cfg)
	return newModel(context.Background(), loader, cfg)
}

// load runs the model's load command and feeds the result back in.
func load(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadSnapshot()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Loads(t *testing.T) {
	loader := &fakeLoader{snap: testSnapshot()}
	m := newTestModel(t, loader)

	assert.Contains(t, m.View(), "Loading expenses")

	m = load(t, m)
	require.True(t, m.ready)
	assert.False(t, m.loading)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, model.MustParseDate("2024-03-15"), m.dashboard.Month)

	view := m.View()
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "March 2024")
	assert.Contains(t, view, "₹350")
	assert.Contains(t, view, "Dinner party")
}

func TestModel_LoadError(t *testing.T) {
	m := load(t, newTestModel(t, &fakeLoader{err: errors.New("database is locked")}))

	assert.False(t, m.ready)
	require.Error(t, m.lastError)
	assert.Contains(t, m.View(), "database is locked")
}

func TestModel_NilLoader(t *testing.T) {
	m := load(t, newTestModel(t, nil))
	assert.EqualError(t, m.lastError, "storage not configured")
}

func TestModel_Tabs(t *testing.T) {
	m := load(t, newTestModel(t, &fakeLoader{snap: testSnapshot()}))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabAnalytics, m.tab)
	assert.Contains(t, m.View(), "By category")
	assert.Contains(t, m.View(), "Food is your highest spending category at 86%")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabBudget, m.tab)
	view := m.View()
	assert.Contains(t, view, "Overall")
	assert.Contains(t, view, "danger")
	assert.Contains(t, view, "Weekly budgets are stored but not tracked.")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabHome, m.tab)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabBudget, m.tab)

	m, _ = press(t, m, runes("2"))
	assert.Equal(t, TabAnalytics, m.tab)
	m, _ = press(t, m, runes("1"))
	assert.Equal(t, TabHome, m.tab)
}

func TestModel_MonthNavigation(t *testing.T) {
	m := load(t, newTestModel(t, &fakeLoader{snap: testSnapshot()}))

	m, _ = press(t, m, runes("]"))
	assert.Equal(t, 0, m.monthsBack, "cannot move past the current month")

	m, _ = press(t, m, runes("["))
	assert.Equal(t, model.MustParseDate("2024-02-29"), m.dashboard.Month)
	assert.InDelta(t, 240, m.dashboard.Home.Comparison.Current, 1e-9)
	assert.Contains(t, m.View(), "February 2024")

	m, _ = press(t, m, runes("["))
	assert.Equal(t, model.MustParseDate("2024-01-31"), m.dashboard.Month)

	m, _ = press(t, m, runes("]"))
	assert.Equal(t, model.MustParseDate("2024-02-29"), m.dashboard.Month)

	m, _ = press(t, m, runes("t"))
	assert.Equal(t, model.MustParseDate("2024-03-15"), m.dashboard.Month)
}

func TestModel_Refresh(t *testing.T) {
	loader := &fakeLoader{snap: testSnapshot()}
	m := load(t, newTestModel(t, loader))

	m, cmd := press(t, m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	// A second refresh while loading is ignored.
	_, cmd = press(t, m, runes("r"))
	assert.Nil(t, cmd)

	loader.snap.Expenses = nil
	m = load(t, m)
	assert.Equal(t, 2, loader.calls)
	assert.Zero(t, m.dashboard.Home.Comparison.Current)
	assert.Contains(t, m.View(), "No expenses yet")
}

func TestModel_ThemeFollowsSettings(t *testing.T) {
	snap := testSnapshot()
	snap.Settings.Theme = model.ThemeLight

	cfg := defaultConfig()
	WithToday(func() model.Date { return model.MustParseDate("2024-03-15") })(&cfg)
	m := newModel(context.Background(), &fakeLoader{snap: snap}, cfg)
	m = load(t, m)

	assert.Equal(t, themes.Light.Foreground, m.theme.Foreground)
}

func TestModel_Quit(t *testing.T) {
	m := load(t, newTestModel(t, &fakeLoader{snap: testSnapshot()}))

	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_Help(t *testing.T) {
	m := load(t, newTestModel(t, &fakeLoader{snap: testSnapshot()}))

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "previous month")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, " ▄█", sparkline([]analytics.DailyAmount{{Day: 1}, {Day: 2, Amount: 50}, {Day: 3, Amount: 100}}, 100))
	assert.Equal(t, "  ", sparkline([]analytics.DailyAmount{{Day: 1}, {Day: 2}}, 0))
}

func TestDayAxis(t *testing.T) {
	axis := dayAxis(31)
	assert.Len(t, axis, 31)
	assert.Equal(t, byte('1'), axis[0])
	assert.Equal(t, "31", axis[29:])
	assert.Empty(t, dayAxis(1))
}

func TestModel_LoadsFromStore(t *testing.T) {
	store := testutil.SetupTestStore(t)
	store.MustAddExpenses(testutil.NewExpenses(t).
		In("2024-02").
		Add(240, "Food", 5).
		In("2024-03").
		AddNote(300, "Food", 10, "Dinner party").
		Add(50, "Transport", 2).
		Build()...)

	m := load(t, newTestModel(t, store))
	require.NoError(t, m.lastError)
	assert.True(t, m.ready)
	assert.InDelta(t, 350, m.dashboard.Home.Comparison.Current, 0.001)
	assert.InDelta(t, 240, m.dashboard.Home.Comparison.Previous, 0.001)
	assert.Contains(t, m.View(), "Dinner party")
}
