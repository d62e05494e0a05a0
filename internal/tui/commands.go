package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// loadSnapshot reads everything the dashboard shows from the store.
func (m Model) loadSnapshot() tea.Cmd {
	loader := m.loader
	timeout := m.config.LoadTimeout
	parent := m.ctx

	return func() tea.Msg {
		if loader == nil {
			return snapshotLoadedMsg{err: fmt.Errorf("storage not configured")}
		}

		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		snap, err := loader.Snapshot(ctx)
		if err != nil {
			return snapshotLoadedMsg{err: fmt.Errorf("failed to load data: %w", err)}
		}
		return snapshotLoadedMsg{snapshot: snap}
	}
}
