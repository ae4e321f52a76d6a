package popup

import (
	"strings"

	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/mattn/go-runewidth"
)

// Side is where the detail panel sits relative to the proposal list.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// View renders the popup. The controller owns all decisions; a View only
// draws rows, reports their geometry and holds scroll state. Rows are
// addressed by index, so a renderer resolves pointer targets to an index
// before calling Controller.Hover or Controller.Click.
type View interface {
	// Render replaces the rows and returns the height of each one
	Render(items []suggest.Proposal) []int
	// SetListHeight fixes the visible list height, 0 means fit all rows
	SetListHeight(h int)
	// SetOverflow marks the list as having more rows than fit
	SetOverflow(overflow bool)
	// Width returns the popup width for the current rows
	Width() int
	// Place shows the popup with its top-left corner at x, y
	Place(x, y int)
	// Hide hides the popup
	Hide()
	// Highlight moves the selection highlight, prev is -1 when none
	Highlight(prev, next int)
	// Viewport returns the list scroll offset and visible height
	Viewport() (top, height int)
	// ScrollTo scrolls the list so top is the first visible line
	ScrollTo(top int)
	// DetailWidth returns how wide the detail panel would be for text
	DetailWidth(text string) int
	// ShowDetail shows text in the detail panel, top is relative to the
	// popup and side says which side of the list it goes
	ShowDetail(text string, top int, side Side)
	// HideDetail hides the detail panel
	HideDetail()
}

// DetailState is what a ListView's detail panel currently shows.
type DetailState struct {
	Text    string
	Top     int
	Side    Side
	Visible bool
}

// ListView is a headless View on a character grid. Each row is RowHeight
// lines tall and as wide as its display text plus padding. Terminal
// renderers embed it and draw from its state.
type ListView struct {
	RowHeight int
	Padding   int

	items       []suggest.Proposal
	heights     []int
	listHeight  int
	scrollTop   int
	overflow    bool
	visible     bool
	x, y        int
	highlighted int
	detail      DetailState
}

// NewListView returns a ListView with single line rows and one cell of
// horizontal padding.
func NewListView() *ListView {
	return &ListView{RowHeight: 1, Padding: 1, highlighted: -1}
}

func (v *ListView) Render(items []suggest.Proposal) []int {
	rh := v.RowHeight
	if rh < 1 {
		rh = 1
	}
	v.items = append(v.items[:0], items...)
	v.heights = make([]int, len(items))
	for i := range v.heights {
		v.heights[i] = rh
	}
	v.scrollTop = 0
	v.highlighted = -1
	return append([]int(nil), v.heights...)
}

func (v *ListView) SetListHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.listHeight = h
}

func (v *ListView) SetOverflow(overflow bool) {
	v.overflow = overflow
}

func (v *ListView) Width() int {
	w := 0
	for _, it := range v.items {
		if sw := runewidth.StringWidth(it.DisplayText()); sw > w {
			w = sw
		}
	}
	w += 2 * v.Padding
	if v.overflow {
		w++ // scrollbar
	}
	return w
}

func (v *ListView) Place(x, y int) {
	v.x, v.y = x, y
	v.visible = true
}

func (v *ListView) Hide() {
	v.visible = false
}

func (v *ListView) Highlight(prev, next int) {
	v.highlighted = next
}

func (v *ListView) Viewport() (top, height int) {
	return v.scrollTop, v.visibleHeight()
}

func (v *ListView) ScrollTo(top int) {
	maxTop := v.totalHeight() - v.visibleHeight()
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	v.scrollTop = top
}

func (v *ListView) DetailWidth(text string) int {
	w := 0
	for _, line := range strings.Split(text, "\n") {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w + 2*v.Padding
}

func (v *ListView) ShowDetail(text string, top int, side Side) {
	v.detail = DetailState{Text: text, Top: top, Side: side, Visible: true}
}

func (v *ListView) HideDetail() {
	v.detail.Visible = false
}

// Items returns the rendered proposals.
func (v *ListView) Items() []suggest.Proposal {
	return v.items
}

// Visible reports whether the popup is placed.
func (v *ListView) Visible() bool {
	return v.visible
}

// Position returns where the popup was placed.
func (v *ListView) Position() (x, y int) {
	return v.x, v.y
}

// Highlighted returns the highlighted row, -1 if none.
func (v *ListView) Highlighted() int {
	return v.highlighted
}

// Overflowing reports the overflow mark.
func (v *ListView) Overflowing() bool {
	return v.overflow
}

// Detail returns the detail panel state.
func (v *ListView) Detail() DetailState {
	return v.detail
}

// VisibleRows returns the rows intersecting the viewport, [first, last).
func (v *ListView) VisibleRows() (first, last int) {
	top, height := v.Viewport()
	first, last = -1, 0
	y := 0
	for i, h := range v.heights {
		if y+h > top && y < top+height {
			if first < 0 {
				first = i
			}
			last = i + 1
		}
		y += h
	}
	if first < 0 {
		return 0, 0
	}
	return first, last
}

// RowAt resolves a line relative to the top of the list to a row index, -1
// when it hits no row.
func (v *ListView) RowAt(line int) int {
	if line < 0 || line >= v.visibleHeight() {
		return -1
	}
	y := line + v.scrollTop
	top := 0
	for i, h := range v.heights {
		if y >= top && y < top+h {
			return i
		}
		top += h
	}
	return -1
}

func (v *ListView) totalHeight() int {
	total := 0
	for _, h := range v.heights {
		total += h
	}
	return total
}

func (v *ListView) visibleHeight() int {
	if v.listHeight > 0 {
		return v.listHeight
	}
	return v.totalHeight()
}
