// Package content provides the document sources a scrollview can render:
// in-memory buffers, files that reload on change, and live command output.
package content

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Content is a line-oriented document. Lines may carry ANSI styling; widths
// are display widths, not byte counts.
type Content interface {
	// Len returns the total line count.
	Len() int
	// Line returns the i-th line, or "" when out of range.
	Line(i int) string
	// Width returns the display width of the widest line.
	Width() int
}

// Watchable is an optional capability for content that can observe its own
// size changes. The host checks for it once at bind time; content without it
// degrades to resize-driven layout updates only.
type Watchable interface {
	// Watch invokes onChange after the content has mutated, until ctx is
	// cancelled. onChange may be called from any goroutine.
	Watch(ctx context.Context, onChange func()) error
}

// Buffer is an in-memory, append-only document. It is safe for concurrent
// use, so live sources can append from a reader goroutine while the UI reads.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
	width int
}

// NewBuffer creates a buffer from the given text, split on newlines.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	if text != "" {
		b.Append(strings.Split(text, "\n")...)
	}
	return b
}

// Len returns the line count.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the i-th line.
func (b *Buffer) Line(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Width returns the display width of the widest line.
func (b *Buffer) Width() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.width
}

// Append adds lines to the end of the buffer.
func (b *Buffer) Append(lines ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range lines {
		b.lines = append(b.lines, line)
		if w := ansi.StringWidth(line); w > b.width {
			b.width = w
		}
	}
}

// Replace swaps the whole document.
func (b *Buffer) Replace(lines []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = lines
	b.width = 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > b.width {
			b.width = w
		}
	}
}
