package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCanceled is returned when the context ends before a line arrives.
var ErrInputCanceled = errors.New("input canceled")

type scannedLine struct {
	err  error
	text string
}

// LineReader reads trimmed lines from an input that may block forever, such
// as a terminal. One goroutine owns the input; a line that arrives after its
// reader gave up is kept for the next ReadLine.
type LineReader struct {
	input io.Reader
	lines chan scannedLine
	start sync.Once
}

// NewLineReader wraps input. Nothing is read until the first ReadLine.
func NewLineReader(input io.Reader) *LineReader {
	return &LineReader{
		input: input,
		lines: make(chan scannedLine, 1),
	}
}

func (r *LineReader) scan() {
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		r.lines <- scannedLine{text: scanner.Text()}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	r.lines <- scannedLine{err: err}
	close(r.lines)
}

// ReadLine returns the next line with surrounding whitespace removed. After
// the input is exhausted it returns io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInputCanceled
	}
	r.start.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ErrInputCanceled
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}
