package model

// Category is a user-defined label for expenses. Expenses refer to it by
// Name, not by ID.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Fallback display values for category names with no matching Category.
const (
	UnknownCategoryIcon  = "📦"
	UnknownCategoryColor = "hsl(0, 0%, 50%)"
)

// DefaultCategories are available before the user defines any of their own.
var DefaultCategories = []Category{
	{ID: "1", Name: "Food", Icon: "🍔", Color: "hsl(24, 100%, 50%)"},
	{ID: "2", Name: "Transport", Icon: "🚕", Color: "hsl(210, 100%, 50%)"},
	{ID: "3", Name: "Shopping", Icon: "🛍", Color: "hsl(330, 100%, 50%)"},
	{ID: "4", Name: "Bills", Icon: "💡", Color: "hsl(45, 100%, 50%)"},
	{ID: "5", Name: "Entertainment", Icon: "🎮", Color: "hsl(270, 100%, 50%)"},
	{ID: "6", Name: "Health", Icon: "🏥", Color: "hsl(150, 100%, 40%)"},
	{ID: "7", Name: "Other", Icon: "📦", Color: "hsl(0, 0%, 50%)"},
}

// UnknownCategory is the display category for a name that matches nothing.
func UnknownCategory(name string) Category {
	return Category{
		Name:  name,
		Icon:  UnknownCategoryIcon,
		Color: UnknownCategoryColor,
	}
}

// CategoryUpdate holds the fields to change on an existing category.
type CategoryUpdate struct {
	Name  *string
	Icon  *string
	Color *string
}

// Apply merges the update into c and returns the result.
func (u CategoryUpdate) Apply(c Category) Category {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	return c
}

// CategoryIndex resolves category names to categories. Names are not
// guaranteed unique; the first category with a name wins.
type CategoryIndex map[string]Category

// NewCategoryIndex indexes categories by name.
func NewCategoryIndex(categories []Category) CategoryIndex {
	idx := make(CategoryIndex, len(categories))
	for _, c := range categories {
		if _, ok := idx[c.Name]; !ok {
			idx[c.Name] = c
		}
	}
	return idx
}

// Lookup returns the category called name, or the unknown-category fallback.
func (idx CategoryIndex) Lookup(name string) Category {
	if c, ok := idx[name]; ok {
		return c
	}
	return UnknownCategory(name)
}

// Known reports whether a category called name exists.
func (idx CategoryIndex) Known(name string) bool {
	_, ok := idx[name]
	return ok
}
