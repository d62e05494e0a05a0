package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "12.50", want: 12.5},
		{input: " 0.1 ", want: 0.1},
		{input: "1000", want: 1000},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "no\n", want: false},
		{input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Delete everything?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete everything? [y/N]")
		})
	}
}

func TestPrompter_AmountRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("lots\n-3\n42.75\n"), &out)

	amount, err := p.Amount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.75, amount)
	assert.Equal(t, 2, strings.Count(out.String(), "positive number"))
}

func TestPrompter_Category(t *testing.T) {
	categories := model.DefaultCategories

	t.Run("by number", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("2\n"), io.Discard)
		got, err := p.Category(context.Background(), categories)
		require.NoError(t, err)
		assert.Equal(t, "Transport", got)
	})

	t.Run("by name after a bad answer", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("99\nHealth\n"), &out)
		got, err := p.Category(context.Background(), categories)
		require.NoError(t, err)
		assert.Equal(t, "Health", got)
		assert.Contains(t, out.String(), "Pick a number")
	})

	t.Run("no categories", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), io.Discard)
		_, err := p.Category(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("input ends", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), io.Discard)
		_, err := p.Category(context.Background(), categories)
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestPrompter_Line(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  Birthday gift \n\n"), &out)

	got, err := p.Line(context.Background(), "Note (optional)")
	require.NoError(t, err)
	assert.Equal(t, "Birthday gift", got)
	assert.Contains(t, out.String(), "Note (optional)")

	got, err = p.Line(context.Background(), "Note (optional)")
	require.NoError(t, err)
	assert.Empty(t, got)
}
