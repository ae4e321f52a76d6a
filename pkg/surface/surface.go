/*
Package surface defines the editable text contract content assist works
against, and an in-memory implementation of it.

Offsets are rune (code point) indexes into the content. Coordinates are in the
host's unit of choice: pixels for a graphical host, cells for a terminal.
*/
package surface

// Range is a selection in rune offsets. Start == End is a collapsed caret.
type Range struct {
	Start int
	End   int
}

// Point is a position in surface coordinates.
type Point struct {
	X int
	Y int
}

// Rect is a box in surface coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Surface is the editable text the processor and popup controller read and
// mutate. Platform specific measurement lives behind CharCoords and Bounds.
type Surface interface {
	// Content returns the whole text.
	Content() string
	// Char returns the character at offset, false outside the content.
	Char(offset int) (rune, bool)
	// Selection returns the current selection.
	Selection() Range
	// SetSelection selects [start, end). Pass start twice to place the caret.
	SetSelection(start, end int)
	// Replace substitutes [start, end) with text.
	Replace(text string, start, end int)
	// CharCoords returns the top-left corner of the character at offset.
	CharCoords(offset int) Point
	// Bounds returns the host's bounding box.
	Bounds() Rect
	// OnModify registers fn to run after the content changes. The returned
	// function unregisters it.
	OnModify(fn func()) (remove func())
}

// Caret returns the caret offset, the start of the selection.
func Caret(s Surface) int {
	return s.Selection().Start
}

// SetCaret collapses the selection to pos.
func SetCaret(s Surface, pos int) {
	s.SetSelection(pos, pos)
}

// ReplaceAll substitutes the whole content with text.
func ReplaceAll(s Surface, text string) {
	s.Replace(text, 0, len([]rune(s.Content())))
}

// Insert puts text at offset without removing anything.
func Insert(s Surface, text string, offset int) {
	s.Replace(text, offset, offset)
}
