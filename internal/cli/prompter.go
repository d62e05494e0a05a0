package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are not positive numbers.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// Prompter asks the user for the values a command was not given as flags.
type Prompter struct {
	writer io.Writer
	reader *LineReader
}

// NewPrompter creates a prompter reading from reader and writing to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// ParseAmount parses a money amount exactly and rejects anything that is
// not strictly positive.
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.InexactFloat64(), nil
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Amount asks for an amount until a valid one is entered.
func (p *Prompter) Amount(ctx context.Context) (float64, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Amount")); err != nil {
			return 0, fmt.Errorf("failed to write prompt: %w", err)
		}
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		amount, err := ParseAmount(line)
		if err == nil {
			return amount, nil
		}
		if _, err := fmt.Fprintln(p.writer, FormatError(err.Error())); err != nil {
			return 0, fmt.Errorf("failed to write error: %w", err)
		}
	}
}

// Category lists the categories and asks for one by number or name.
func (p *Prompter) Category(ctx context.Context, categories []model.Category) (string, error) {
	if len(categories) == 0 {
		return "", errors.New("no categories to choose from")
	}

	for i, cat := range categories {
		if _, err := fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, FormatCategory(cat)); err != nil {
			return "", fmt.Errorf("failed to write category list: %w", err)
		}
	}

	idx := model.NewCategoryIndex(categories)
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Category")); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(categories) {
			return categories[n-1].Name, nil
		}
		if idx.Known(line) {
			return line, nil
		}
		if _, err := fmt.Fprintln(p.writer, FormatWarning("Pick a number from the list or type a category name.")); err != nil {
			return "", fmt.Errorf("failed to write warning: %w", err)
		}
	}
}

// Line asks for free text; an empty answer is allowed.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}
