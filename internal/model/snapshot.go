package model

// Snapshot is every stored collection read at one point in time. It is the
// input the analytics functions work from.
type Snapshot struct {
	Expenses   []Expense
	Categories []Category
	Budgets    []Budget
	Settings   Settings
}

// CategoryIndex indexes the snapshot's categories by name.
func (s Snapshot) CategoryIndex() CategoryIndex {
	return NewCategoryIndex(s.Categories)
}
