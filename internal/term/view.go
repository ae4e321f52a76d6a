package term

import (
	"strings"

	"github.com/bastiangx/wordassist/pkg/popup"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Styles used when drawing the popup.
type Styles struct {
	Row       tcell.Style
	Selected  tcell.Style
	Scrollbar tcell.Style
	Thumb     tcell.Style
	Detail    tcell.Style
}

// DefaultStyles returns the popup styles.
func DefaultStyles() Styles {
	base := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	return Styles{
		Row:       base,
		Selected:  base.Background(tcell.ColorSteelBlue).Bold(true),
		Scrollbar: base.Foreground(tcell.ColorGray),
		Thumb:     base.Foreground(tcell.ColorSilver),
		Detail:    tcell.StyleDefault.Background(tcell.ColorDimGray).Foreground(tcell.ColorWhite),
	}
}

// View is a popup.ListView drawn onto a tcell screen. The list sits on the
// line below the anchor reported to Place.
type View struct {
	*popup.ListView
	Styles Styles
}

// NewView returns a View with default styles.
func NewView() *View {
	return &View{ListView: popup.NewListView(), Styles: DefaultStyles()}
}

// listRect returns the list box in screen cells.
func (v *View) listRect() (x, y, w, h int) {
	x, y = v.Position()
	_, h = v.Viewport()
	return x, y + 1, v.Width(), h
}

// detailRect returns the detail panel box, ok is false when it is hidden.
func (v *View) detailRect() (x, y, w, h int, ok bool) {
	d := v.Detail()
	if !v.Visible() || !d.Visible {
		return 0, 0, 0, 0, false
	}
	lx, ly, lw, _ := v.listRect()
	w = v.DetailWidth(d.Text)
	x = lx + lw
	if d.Side == popup.SideLeft {
		x = lx - w
	}
	return x, ly + d.Top, w, strings.Count(d.Text, "\n") + 1, true
}

// HitTest resolves a screen cell. inside reports whether the cell belongs to
// the popup, row is the list row under it or -1, detail whether it is on the
// detail panel.
func (v *View) HitTest(cx, cy int) (row int, inside, detail bool) {
	if !v.Visible() {
		return -1, false, false
	}
	if x, y, w, h, ok := v.detailRect(); ok && cx >= x && cx < x+w && cy >= y && cy < y+h {
		return -1, true, true
	}
	x, y, w, h := v.listRect()
	if cx < x || cx >= x+w || cy < y || cy >= y+h {
		return -1, false, false
	}
	return v.RowAt(cy - y), true, false
}

// ScrollBy scrolls the list by delta lines.
func (v *View) ScrollBy(delta int) {
	top, _ := v.Viewport()
	v.ScrollTo(top + delta)
}

// Draw paints the popup onto s.
func (v *View) Draw(s tcell.Screen) {
	if !v.Visible() {
		return
	}
	x, y, w, h := v.listRect()
	items := v.Items()
	first, last := v.VisibleRows()
	top, _ := v.Viewport()

	textWidth := w
	if v.Overflowing() {
		textWidth--
	}
	for i := first; i < last; i++ {
		style := v.Styles.Row
		if i == v.Highlighted() {
			style = v.Styles.Selected
		}
		rowY := y + i*v.rowHeight() - top
		for line := 0; line < v.rowHeight(); line++ {
			text := ""
			if line == 0 {
				text = items[i].DisplayText()
			}
			drawCells(s, x, rowY+line, textWidth, v.Padding, text, style)
		}
	}

	if v.Overflowing() && h > 0 {
		total := len(items) * v.rowHeight()
		thumb := top * h / total
		for line := 0; line < h; line++ {
			style, ch := v.Styles.Scrollbar, '│'
			if line >= thumb && line < thumb+max(1, h*h/total) {
				style, ch = v.Styles.Thumb, '┃'
			}
			s.SetContent(x+w-1, y+line, ch, nil, style)
		}
	}

	if dx, dy, dw, _, ok := v.detailRect(); ok {
		for i, line := range strings.Split(v.Detail().Text, "\n") {
			drawCells(s, dx, dy+i, dw, v.Padding, line, v.Styles.Detail)
		}
	}
}

func (v *View) rowHeight() int {
	return max(v.RowHeight, 1)
}

// drawCells fills width cells at x, y with text after pad blank cells.
func drawCells(s tcell.Screen, x, y, width, pad int, text string, style tcell.Style) {
	col := 0
	for ; col < pad && col < width; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if col+rw > width {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += rw
	}
	for ; col < width; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
}
