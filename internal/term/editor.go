// Package term is a small tcell text editor hosting the content assist popup.
// It exists to drive the popup with real keyboard, mouse and focus events.
package term

import (
	"fmt"
	"math"

	"github.com/bastiangx/wordassist/internal/logger"
	"github.com/bastiangx/wordassist/internal/utils"
	"github.com/bastiangx/wordassist/pkg/assist"
	"github.com/bastiangx/wordassist/pkg/dictionary"
	"github.com/bastiangx/wordassist/pkg/popup"
	"github.com/bastiangx/wordassist/pkg/surface"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var statusStyle = tcell.StyleDefault.Reverse(true)

// Editor owns the screen, the text buffer and the content assist attached to it.
type Editor struct {
	screen tcell.Screen
	buf    *surface.Buffer
	view   *View
	assist *assist.ContentAssist
	log    *log.Logger

	mouseDown bool
	quit      bool
}

// New creates an editor on an initialized screen. Timer callbacks are posted
// back to the screen's event queue, so every controller call happens on the
// goroutine running Run.
func New(screen tcell.Screen, entries []dictionary.Entry, opts assist.Options) (*Editor, error) {
	e := &Editor{
		screen: screen,
		buf:    surface.NewBuffer(""),
		view:   NewView(),
		log:    logger.New("term"),
	}
	opts.Scheduler = popup.PostScheduler(func(fn func()) {
		if err := screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
			e.log.Debugf("Dropped timer callback: %v", err)
		}
	})

	ca, err := assist.New(e.buf, e.view, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("attach content assist: %w", err)
	}
	ca.SetEntries(entries)
	e.assist = ca

	screen.EnableMouse()
	screen.EnableFocus()
	e.resize()
	return e, nil
}

// Buffer returns the edited text.
func (e *Editor) Buffer() *surface.Buffer {
	return e.buf
}

// Controller returns the popup controller.
func (e *Editor) Controller() *popup.Controller {
	return e.assist.Controller()
}

// Run draws and handles events until Ctrl+Q or Ctrl+C.
func (e *Editor) Run() error {
	defer e.assist.Close()
	for !e.quit {
		e.Draw()
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		e.HandleEvent(ev)
	}
	return nil
}

// HandleEvent dispatches one tcell event.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventResize:
		e.resize()
		e.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			e.Controller().Blur()
		}
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	}
}

func (e *Editor) resize() {
	w, h := e.screen.Size()
	// last line is the status bar
	e.buf.SetBounds(surface.Rect{X: 0, Y: 0, Width: w, Height: max(h-1, 0)})
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	c := e.Controller()
	caret := surface.Caret(e.buf)

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		e.quit = true
		return
	case tcell.KeyCtrlSpace:
		c.HandleKey(popup.KeyAssist)
		return
	case tcell.KeyUp:
		if c.HandleKey(popup.KeyUp) {
			return
		}
	case tcell.KeyDown:
		if c.HandleKey(popup.KeyDown) {
			return
		}
	case tcell.KeyEnter:
		if c.HandleKey(popup.KeyEnter) {
			return
		}
	case tcell.KeyEsc:
		if c.HandleKey(popup.KeyEscape) {
			return
		}
	}

	switch ev.Key() {
	case tcell.KeyRune:
		surface.Insert(e.buf, string(ev.Rune()), caret)
	case tcell.KeyEnter:
		surface.Insert(e.buf, "\n", caret)
	case tcell.KeyTab:
		surface.Insert(e.buf, "\t", caret)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if caret > 0 {
			e.buf.Replace("", caret-1, caret)
		}
	case tcell.KeyDelete:
		e.buf.Replace("", caret, caret+1)
	case tcell.KeyLeft:
		e.moveCaret(caret - 1)
	case tcell.KeyRight:
		e.moveCaret(caret + 1)
	case tcell.KeyUp, tcell.KeyDown:
		line, col := e.buf.LineCol(caret)
		if ev.Key() == tcell.KeyUp {
			line--
		} else {
			line++
		}
		if line >= 0 {
			e.moveCaret(e.buf.OffsetAt(line, col))
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		line, _ := e.buf.LineCol(caret)
		e.moveCaret(e.buf.OffsetAt(line, 0))
	case tcell.KeyEnd, tcell.KeyCtrlE:
		line, _ := e.buf.LineCol(caret)
		e.moveCaret(e.buf.OffsetAt(line, math.MaxInt32))
	}
}

// moveCaret moves the caret without editing; the proposals were computed for
// the old caret, so the popup closes.
func (e *Editor) moveCaret(offset int) {
	surface.SetCaret(e.buf, offset)
	e.Controller().Cancel()
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	c := e.Controller()
	x, y := ev.Position()
	buttons := ev.Buttons()
	row, inside, detail := e.view.HitTest(x, y)

	if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
		switch {
		case detail:
			c.DetailScrolled()
		case inside && buttons&tcell.WheelUp != 0:
			e.view.ScrollBy(-1)
		case inside:
			e.view.ScrollBy(1)
		}
		return
	}

	pressed := buttons&tcell.Button1 != 0 && !e.mouseDown
	e.mouseDown = buttons&tcell.Button1 != 0

	switch {
	case pressed && inside:
		c.PopupPointerDown()
		if row >= 0 {
			c.Click(row)
		}
	case pressed:
		c.PointerDown()
		b := e.buf.Bounds()
		if y < b.Y+b.Height {
			surface.SetCaret(e.buf, e.buf.OffsetAt(y-b.Y, x-b.X))
		}
	case buttons == tcell.ButtonNone && inside && row >= 0:
		c.Hover(row)
	}
}

// Draw renders the text, the caret, the popup and the status bar.
func (e *Editor) Draw() {
	s := e.screen
	s.Clear()
	b := e.buf.Bounds()

	line, col := 0, 0
	for off := 0; off < e.buf.Len(); off++ {
		r, _ := e.buf.Char(off)
		if r == '\n' {
			line, col = line+1, 0
			continue
		}
		w := cellWidth(r, col)
		if line < b.Height && col < b.Width && r != '\t' {
			s.SetContent(b.X+col, b.Y+line, r, nil, tcell.StyleDefault)
		}
		col += w
	}

	cl, cc := e.buf.LineCol(surface.Caret(e.buf))
	s.ShowCursor(b.X+cc, b.Y+cl)

	e.view.Draw(s)
	e.drawStatus()
	s.Show()
}

func (e *Editor) drawStatus() {
	w, h := e.screen.Size()
	if h < 1 {
		return
	}
	status := fmt.Sprintf(" Ctrl+Space assist  Ctrl+Q quit  %s words", utils.FormatWithCommas(e.assist.Processor().Dictionary().Len()))
	if e.Controller().Visible() {
		status += fmt.Sprintf("  [%d/%d]", e.Controller().Selected()+1, len(e.Controller().Proposals()))
	}
	drawCells(e.screen, 0, h-1, w, 0, status, statusStyle)
}

func cellWidth(r rune, col int) int {
	if r == '\t' {
		return surface.TabWidth - col%surface.TabWidth
	}
	return runewidth.RuneWidth(r)
}
