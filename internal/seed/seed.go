// Package seed generates plausible fake expenses for demos and manual testing.
package seed

import (
	"sort"

	"github.com/Veraticus/spent/internal/model"
	"github.com/brianvoe/gofakeit/v6"
)

// amountRange bounds generated amounts for the default categories.
type amountRange struct {
	min, max float64
}

var categoryRanges = map[string]amountRange{
	"Food":          {min: 80, max: 900},
	"Transport":     {min: 40, max: 600},
	"Shopping":      {min: 200, max: 5000},
	"Bills":         {min: 500, max: 4000},
	"Entertainment": {min: 150, max: 2000},
	"Health":        {min: 100, max: 3000},
}

var defaultRange = amountRange{min: 10, max: 500}

// Options control what Generate produces.
type Options struct {
	Categories []string
	Months     int
	PerMonth   int
	Seed       int64
}

// Generator produces fake expenses from a seeded faker, so the same seed
// always yields the same data.
type Generator struct {
	faker *gofakeit.Faker
	opts  Options
}

// NewGenerator creates a generator. With no categories the default category
// names are used.
func NewGenerator(opts Options) *Generator {
	if len(opts.Categories) == 0 {
		for _, c := range model.DefaultCategories {
			opts.Categories = append(opts.Categories, c.Name)
		}
	}
	return &Generator{
		faker: gofakeit.New(opts.Seed),
		opts:  opts,
	}
}

// Generate returns PerMonth expenses for each of the last Months calendar
// months up to and including today's month, oldest first. Dates in the
// current month never pass today.
func (g *Generator) Generate(today model.Date) []model.Expense {
	if g.opts.Months <= 0 || g.opts.PerMonth <= 0 {
		return nil
	}

	expenses := make([]model.Expense, 0, g.opts.Months*g.opts.PerMonth)
	for offset := g.opts.Months - 1; offset >= 0; offset-- {
		month := today.FirstOfMonth().AddMonths(-offset)
		lastDay := month.DaysInMonth()
		if offset == 0 {
			lastDay = today.Day
		}

		batch := make([]model.Expense, 0, g.opts.PerMonth)
		for i := 0; i < g.opts.PerMonth; i++ {
			batch = append(batch, g.expense(month, lastDay))
		}
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].Date.Before(batch[j].Date)
		})
		expenses = append(expenses, batch...)
	}
	return expenses
}

func (g *Generator) expense(month model.Date, lastDay int) model.Expense {
	category := g.faker.RandomString(g.opts.Categories)

	r, ok := categoryRanges[category]
	if !ok {
		r = defaultRange
	}

	return model.Expense{
		Amount:   g.faker.Price(r.min, r.max),
		Category: category,
		Note:     g.note(category),
		Date:     model.NewDate(month.Year, month.Month, g.faker.Number(1, lastDay)),
	}
}

func (g *Generator) note(category string) string {
	switch category {
	case "Food":
		return g.faker.RandomString([]string{"Lunch", "Dinner", "Groceries", "Coffee", "Snacks"})
	case "Transport":
		return g.faker.RandomString([]string{"Cab", "Metro card", "Fuel", "Parking", "Bus"})
	case "Bills":
		return g.faker.RandomString([]string{"Electricity", "Internet", "Phone", "Water", "Rent"})
	default:
		// Leave some notes empty like real entries.
		if g.faker.Bool() {
			return ""
		}
		return g.faker.Company()
	}
}
