package tui

import (
	"context"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/Veraticus/spent/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab is one screen of the dashboard.
type Tab int

// Tabs, in display order.
const (
	TabHome Tab = iota
	TabAnalytics
	TabBudget
	tabCount
)

// String returns the tab's title.
func (t Tab) String() string {
	switch t {
	case TabAnalytics:
		return "Analytics"
	case TabBudget:
		return "Budget"
	default:
		return "Home"
	}
}

// Loader reads the whole store at once.
type Loader interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	loader    Loader
	lastError error
	snapshot  *model.Snapshot
	theme     themes.Theme
	dashboard viewmodel.Dashboard
	config    Config
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	tab       Tab
	// monthsBack is how many months before the current one are shown.
	monthsBack int
	width      int
	height     int
	loading    bool
	ready      bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, loader Loader, cfg Config) Model {
	theme := themes.Dark
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(theme.Primary)

	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctx:     ctx,
		loader:  loader,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		theme:   theme,
		help:    h,
		spinner: s,
		width:   cfg.Width,
		height:  cfg.Height,
		loading: true,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSnapshot())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case snapshotLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.snapshot = msg.snapshot
		if m.config.Theme == nil {
			m.theme = themes.ForSetting(msg.snapshot.Settings.Theme)
		}
		m.rebuild()
		m.ready = true

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount

	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount

	case key.Matches(msg, m.keymap.Home):
		m.tab = TabHome

	case key.Matches(msg, m.keymap.Stats):
		m.tab = TabAnalytics

	case key.Matches(msg, m.keymap.Budget):
		m.tab = TabBudget

	case key.Matches(msg, m.keymap.PrevMonth):
		m.monthsBack++
		m.rebuild()

	case key.Matches(msg, m.keymap.NextMonth):
		if m.monthsBack > 0 {
			m.monthsBack--
			m.rebuild()
		}

	case key.Matches(msg, m.keymap.ThisMonth):
		m.monthsBack = 0
		m.rebuild()

	case key.Matches(msg, m.keymap.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadSnapshot())
	}

	return m, nil
}

// reference is the date the shown month is evaluated at: today for the
// current month, the last day for earlier months.
func (m Model) reference() model.Date {
	today := m.config.Today()
	if m.monthsBack == 0 {
		return today
	}
	first := today.FirstOfMonth().AddMonths(-m.monthsBack)
	return model.NewDate(first.Year, first.Month, first.DaysInMonth())
}

func (m *Model) rebuild() {
	if m.snapshot == nil {
		return
	}
	m.dashboard = viewmodel.Build(*m.snapshot, m.reference(), viewmodel.Options{
		RecentLimit:    m.config.RecentLimit,
		SpikeThreshold: m.config.SpikeThreshold,
	})
}
