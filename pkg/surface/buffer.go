package surface

import (
	"github.com/mattn/go-runewidth"
)

// TabWidth is the column stop used when measuring tabs.
const TabWidth = 4

// Metrics scales cell positions into surface coordinates.
type Metrics struct {
	CellWidth  int
	LineHeight int
}

type listener struct {
	id int
	fn func()
}

// Buffer is an in-memory Surface. Geometry is a monospace grid: every rune
// occupies runewidth cells of Metrics.CellWidth, lines are Metrics.LineHeight
// apart, and the grid starts at the bounds origin.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	text      []rune
	sel       Range
	bounds    Rect
	metrics   Metrics
	listeners []listener
	nextID    int
	last      string
}

// NewBuffer returns a buffer holding text with the caret at its end.
func NewBuffer(text string) *Buffer {
	b := &Buffer{
		text:    []rune(text),
		metrics: Metrics{CellWidth: 1, LineHeight: 1},
		last:    text,
	}
	b.sel = Range{Start: len(b.text), End: len(b.text)}
	return b
}

// SetBounds sets the box reported by Bounds and used as the grid origin.
func (b *Buffer) SetBounds(r Rect) {
	b.bounds = r
}

// SetMetrics sets the cell size. Non-positive values fall back to 1.
func (b *Buffer) SetMetrics(m Metrics) {
	if m.CellWidth < 1 {
		m.CellWidth = 1
	}
	if m.LineHeight < 1 {
		m.LineHeight = 1
	}
	b.metrics = m
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

func (b *Buffer) Content() string {
	return string(b.text)
}

func (b *Buffer) Char(offset int) (rune, bool) {
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	return b.text[offset], true
}

func (b *Buffer) Selection() Range {
	return b.sel
}

func (b *Buffer) SetSelection(start, end int) {
	start, end = b.clamp(start), b.clamp(end)
	if end < start {
		start, end = end, start
	}
	b.sel = Range{Start: start, End: end}
}

// Replace substitutes [start, end) with text. Selection edges before the
// range stay, edges after it shift by the length change, and edges inside it
// move to the end of the inserted text. A caret at an insertion point moves
// past the inserted text, as when typing.
func (b *Buffer) Replace(text string, start, end int) {
	start, end = b.clamp(start), b.clamp(end)
	if end < start {
		start, end = end, start
	}
	ins := []rune(text)

	next := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	next = append(next, b.text[:start]...)
	next = append(next, ins...)
	next = append(next, b.text[end:]...)
	b.text = next

	shift := func(pos int) int {
		switch {
		case pos < start:
			return pos
		case pos >= end:
			return pos + len(ins) - (end - start)
		default:
			return start + len(ins)
		}
	}
	b.sel = Range{Start: shift(b.sel.Start), End: shift(b.sel.End)}

	b.notify()
}

// LineCol returns the zero based line and display column of offset.
func (b *Buffer) LineCol(offset int) (line, col int) {
	offset = b.clamp(offset)
	for i := 0; i < offset; i++ {
		if b.text[i] == '\n' {
			line++
			col = 0
			continue
		}
		col += cellWidth(b.text[i], col)
	}
	return line, col
}

// OffsetAt is the inverse of LineCol: the offset of the character covering
// display column col on line. Columns past the end of a line map to its end,
// lines past the last one to the end of the content.
func (b *Buffer) OffsetAt(line, col int) int {
	line, col = max(line, 0), max(col, 0)
	l, c := 0, 0
	for i, r := range b.text {
		if l < line {
			if r == '\n' {
				l++
			}
			continue
		}
		if r == '\n' {
			return i
		}
		w := cellWidth(r, c)
		if c+w > col {
			return i
		}
		c += w
	}
	return len(b.text)
}

func cellWidth(r rune, col int) int {
	if r == '\t' {
		return TabWidth - col%TabWidth
	}
	return runewidth.RuneWidth(r)
}

func (b *Buffer) CharCoords(offset int) Point {
	line, col := b.LineCol(offset)
	return Point{
		X: b.bounds.X + col*b.metrics.CellWidth,
		Y: b.bounds.Y + line*b.metrics.LineHeight,
	}
}

func (b *Buffer) Bounds() Rect {
	return b.bounds
}

func (b *Buffer) OnModify(fn func()) (remove func()) {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// notify runs the listeners when the content differs from the last
// notified value.
func (b *Buffer) notify() {
	current := string(b.text)
	if current == b.last {
		return
	}
	b.last = current

	snapshot := make([]listener, len(b.listeners))
	copy(snapshot, b.listeners)
	for _, l := range snapshot {
		l.fn()
	}
}

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}
