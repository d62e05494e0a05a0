package tui

import "github.com/Veraticus/spent/internal/model"

// snapshotLoadedMsg carries the result of a store read.
type snapshotLoadedMsg struct {
	err      error
	snapshot *model.Snapshot
}
