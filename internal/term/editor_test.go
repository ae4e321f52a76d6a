package term

import (
	"testing"
	"time"

	"github.com/bastiangx/wordassist/pkg/assist"
	"github.com/bastiangx/wordassist/pkg/dictionary"
	"github.com/bastiangx/wordassist/pkg/popup"
	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/gdamore/tcell/v2"
)

var testEntries = []dictionary.Entry{
	{Word: "cat"},
	{Word: "caterpillar", Detail: "larva"},
	{Word: "dog"},
}

func newTestEditor(t *testing.T) (*Editor, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing screen failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(40, 10)

	e, err := New(s, testEntries, assist.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.assist.Close)
	return e, s
}

func typeKeys(e *Editor, text string) {
	for _, r := range text {
		e.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
	}
}

func key(e *Editor, k tcell.Key) {
	e.HandleEvent(tcell.NewEventKey(k, 0, 0))
}

func screenText(s tcell.SimulationScreen, x, y, n int) string {
	var out []rune
	for i := 0; i < n; i++ {
		r, _, _, _ := s.GetContent(x+i, y)
		out = append(out, r)
	}
	return string(out)
}

// pump feeds screen events to the editor until done reports true.
func pump(t *testing.T, e *Editor, s tcell.Screen, done func() bool) {
	t.Helper()
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	timeout := time.After(2 * time.Second)
	for !done() {
		select {
		case ev := <-events:
			e.HandleEvent(ev)
		case <-timeout:
			t.Fatal("timed out waiting for editor state")
		}
	}
}

func TestTypingDrawsPopup(t *testing.T) {
	e, s := newTestEditor(t)
	typeKeys(e, "ca")

	if !e.Controller().Visible() {
		t.Fatal("popup should be visible")
	}
	e.Draw()
	if got := screenText(s, 0, 0, 2); got != "ca" {
		t.Errorf("text line = %q", got)
	}
	if got := screenText(s, 1, 1, 3); got != "cat" {
		t.Errorf("first row = %q", got)
	}
	if got := screenText(s, 1, 2, 11); got != "caterpillar" {
		t.Errorf("second row = %q", got)
	}
	if got := screenText(s, 0, 9, 11); got != " Ctrl+Space" {
		t.Errorf("status line = %q", got)
	}
}

func TestKeyboardCommit(t *testing.T) {
	e, _ := newTestEditor(t)
	typeKeys(e, "ca")
	key(e, tcell.KeyDown)
	key(e, tcell.KeyEnter)

	if got := e.Buffer().Content(); got != "caterpillar" {
		t.Errorf("content = %q", got)
	}
	if e.Controller().Visible() {
		t.Error("popup should hide after commit")
	}

	// Enter with no popup is a newline
	key(e, tcell.KeyEnter)
	if got := e.Buffer().Content(); got != "caterpillar\n" {
		t.Errorf("content = %q", got)
	}
}

func TestEditingKeys(t *testing.T) {
	e, _ := newTestEditor(t)
	typeKeys(e, "dox")
	key(e, tcell.KeyBackspace2)
	if got := e.Buffer().Content(); got != "do" {
		t.Fatalf("content after backspace = %q", got)
	}
	if !e.Controller().Visible() {
		t.Error("deleting back into a known prefix should show proposals")
	}

	key(e, tcell.KeyEsc)
	if e.Controller().Visible() {
		t.Error("escape should hide")
	}

	key(e, tcell.KeyLeft)
	key(e, tcell.KeyDelete)
	if got := e.Buffer().Content(); got != "d" {
		t.Errorf("content after delete = %q", got)
	}
}

func TestMouseClickCommits(t *testing.T) {
	e, _ := newTestEditor(t)
	typeKeys(e, "ca")
	e.HandleEvent(tcell.NewEventMouse(2, 2, tcell.Button1, 0))

	if got := e.Buffer().Content(); got != "caterpillar" {
		t.Errorf("content = %q", got)
	}
	if e.Controller().Visible() {
		t.Error("click should hide the popup")
	}
}

func TestMouseClickOutsideHides(t *testing.T) {
	e, _ := newTestEditor(t)
	typeKeys(e, "ca")
	e.HandleEvent(tcell.NewEventMouse(30, 5, tcell.Button1, 0))

	if e.Controller().Visible() {
		t.Error("click outside should hide the popup")
	}
	if e.Buffer().Content() != "ca" {
		t.Errorf("content changed to %q", e.Buffer().Content())
	}
}

func TestHoverAfterLockExpires(t *testing.T) {
	e, s := newTestEditor(t)
	typeKeys(e, "ca")

	hover := tcell.NewEventMouse(2, 2, tcell.ButtonNone, 0)
	e.HandleEvent(hover)
	if e.Controller().Selected() != 0 {
		t.Fatal("hover during the lock should be ignored")
	}

	// the unlock arrives as a posted event
	pump(t, e, s, func() bool { return !e.Controller().HoverLocked() })
	e.HandleEvent(hover)
	if e.Controller().Selected() != 1 {
		t.Errorf("selected = %d after hover, want 1", e.Controller().Selected())
	}
}

func TestFocusLossHides(t *testing.T) {
	e, s := newTestEditor(t)
	typeKeys(e, "ca")
	e.HandleEvent(tcell.NewEventFocus(false))
	if !e.Controller().Visible() {
		t.Fatal("blur should hide only after the delay")
	}
	pump(t, e, s, func() bool { return !e.Controller().Visible() })
}

func TestViewHitTest(t *testing.T) {
	v := NewView()
	v.Render([]suggest.Proposal{
		suggest.NewProposal("cat", 0, 1, 3, ""),
		suggest.NewProposal("cow", 0, 1, 3, ""),
	})
	v.Place(5, 3)
	v.ShowDetail("info", 1, popup.SideRight)

	testCases := []struct {
		description string
		x, y        int
		row         int
		inside      bool
		detail      bool
	}{
		{"first row", 6, 4, 0, true, false},
		{"second row", 9, 5, 1, true, false},
		{"anchor line", 6, 3, -1, false, false},
		{"left of list", 4, 4, -1, false, false},
		{"detail panel", 10, 5, -1, true, true},
		{"beside detail", 10, 4, -1, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			row, inside, detail := v.HitTest(tc.x, tc.y)
			if row != tc.row || inside != tc.inside || detail != tc.detail {
				t.Errorf("HitTest(%d, %d) = %d, %v, %v, want %d, %v, %v",
					tc.x, tc.y, row, inside, detail, tc.row, tc.inside, tc.detail)
			}
		})
	}

	v.Hide()
	if _, inside, _ := v.HitTest(6, 4); inside {
		t.Error("hidden popup should not be hit")
	}
}
