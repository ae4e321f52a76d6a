/*
Package popup implements the content assist popup: a two state machine
(Hidden, Visible) that asks a suggest.Processor for proposals, renders them
through a View, tracks the selected row and applies the chosen proposal to
the surface.

Inputs arrive as method calls from the host's event loop:

	OnModify, RequestAssist          compute proposals and show, or stay hidden
	HandleKey(KeyUp/KeyDown)         move the selection, clamped, with hover-lock
	HandleKey(KeyEnter), Click       apply the selected proposal and hide
	HandleKey(KeyEscape), PointerDown hide
	Blur                             hide after HideDelay unless the popup was pressed
	Hover                            select the row under the pointer

Two timers exist, both owned by the controller: the hover-lock expiry, re-armed
on every keyboard navigation, and the deferred hide after a blur. Each carries
a generation number so a callback that was cancelled but already queued does
nothing. Dispose cancels both.

A Controller is not safe for concurrent use. Timer callbacks run through the
configured Scheduler and must end up on the same goroutine as every other
call, so New requires one; use PostScheduler with an event loop.
*/
package popup

import (
	"reflect"
	"time"

	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/bastiangx/wordassist/pkg/surface"
	"github.com/charmbracelet/log"
)

const (
	DefaultVisibleItemCount = 10
	DefaultHoverLock        = 100 * time.Millisecond
	DefaultHideDelay        = 200 * time.Millisecond
)

// State is the popup visibility.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Key is a keyboard command the controller understands.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyAssist // explicit request, Ctrl+Space in most hosts
)

// Options tune the controller. Zero values select the defaults.
type Options struct {
	// VisibleItemCount is how many rows fit before the list scrolls.
	// Negative means no limit.
	VisibleItemCount int
	HoverLock        time.Duration
	HideDelay        time.Duration
	// Scheduler delivers timer callbacks; it has no default.
	Scheduler Scheduler
}

func (o Options) withDefaults() Options {
	if o.VisibleItemCount == 0 {
		o.VisibleItemCount = DefaultVisibleItemCount
	}
	if o.HoverLock <= 0 {
		o.HoverLock = DefaultHoverLock
	}
	if o.HideDelay <= 0 {
		o.HideDelay = DefaultHideDelay
	}
	return o
}

// Controller drives the popup for one surface.
type Controller struct {
	surface   surface.Surface
	processor suggest.Processor
	view      View
	opts      Options

	visible     bool
	proposals   []suggest.Proposal
	tops        []int
	heights     []int
	selected    int
	highlighted int
	overflow    bool
	pos         surface.Point

	hoverLocked bool
	hoverTimer  Timer
	hoverGen    uint64

	hideTimer Timer
	hideGen   uint64
	keepOpen  bool

	applying     bool
	disposed     bool
	removeModify func()
}

// New creates a controller listening to s for content changes. A nil view
// selects a headless ListView. opts.Scheduler is required.
func New(s surface.Surface, p suggest.Processor, v View, opts Options) (*Controller, error) {
	if isNil(s) {
		return nil, &ConfigError{Err: ErrNoSurface}
	}
	if isNil(p) {
		return nil, &ConfigError{Err: ErrNoProcessor}
	}
	if isNil(opts.Scheduler) {
		return nil, &ConfigError{Err: ErrNoScheduler}
	}
	if isNil(v) {
		v = NewListView()
	}

	c := &Controller{
		surface:     s,
		processor:   p,
		view:        v,
		opts:        opts.withDefaults(),
		highlighted: -1,
	}
	c.removeModify = s.OnModify(c.OnModify)
	c.hide()
	return c, nil
}

// OnModify reacts to a content change. Changes made while a proposal is
// being applied are ignored.
func (c *Controller) OnModify() {
	if c.disposed || c.applying {
		return
	}
	c.show()
}

// RequestAssist computes proposals at the caret and shows them.
func (c *Controller) RequestAssist() {
	if c.disposed {
		return
	}
	c.show()
}

// HandleKey runs the command bound to k and reports whether it was
// consumed. While hidden only KeyAssist is consumed.
func (c *Controller) HandleKey(k Key) bool {
	if c.disposed {
		return false
	}
	if !c.visible {
		if k == KeyAssist {
			c.show()
			return true
		}
		return false
	}

	switch k {
	case KeyUp:
		c.SelectPrevious()
	case KeyDown:
		c.SelectNext()
	case KeyEnter:
		c.Commit()
	case KeyEscape:
		c.Cancel()
	default:
		return false
	}
	return true
}

// SelectNext moves the selection down, stopping at the last row.
func (c *Controller) SelectNext() {
	c.navigate(c.selected + 1)
}

// SelectPrevious moves the selection up, stopping at the first row.
func (c *Controller) SelectPrevious() {
	c.navigate(c.selected - 1)
}

func (c *Controller) navigate(ix int) {
	if !c.visible || len(c.proposals) == 0 {
		return
	}
	if ix < 0 {
		ix = 0
	}
	if ix > len(c.proposals)-1 {
		ix = len(c.proposals) - 1
	}
	c.selectProposal(ix, true)
	c.lockHover()
}

// Select highlights row ix and scrolls it into view. Out of range indexes
// are ignored.
func (c *Controller) Select(ix int) {
	if !c.visible || !c.inRange(ix) {
		return
	}
	c.selectProposal(ix, true)
}

// Hover selects the row under the pointer without scrolling, unless a
// recent keyboard navigation holds the hover lock.
func (c *Controller) Hover(ix int) {
	if !c.visible || c.hoverLocked || !c.inRange(ix) {
		return
	}
	c.selectProposal(ix, false)
}

// Click selects row ix and commits it.
func (c *Controller) Click(ix int) {
	if !c.visible || !c.inRange(ix) {
		return
	}
	c.selectProposal(ix, false)
	c.Commit()
}

// Commit hides the popup and applies the selected proposal.
func (c *Controller) Commit() {
	if !c.visible {
		return
	}
	p, ok := c.SelectedProposal()
	c.hide()
	if ok {
		c.apply(p)
	}
}

// Cancel hides the popup without applying anything.
func (c *Controller) Cancel() {
	if c.visible {
		c.hide()
	}
}

// Blur schedules a hide after HideDelay. A PopupPointerDown before the
// timer fires keeps the popup open so the click can land.
func (c *Controller) Blur() {
	if c.disposed {
		return
	}
	c.cancelHide()
	gen := c.hideGen
	c.hideTimer = c.opts.Scheduler.AfterFunc(c.opts.HideDelay, func() {
		if c.disposed || gen != c.hideGen {
			return
		}
		c.hideTimer = nil
		if c.keepOpen {
			c.keepOpen = false
			return
		}
		c.hide()
	})
}

// PopupPointerDown records a press inside the popup.
func (c *Controller) PopupPointerDown() {
	if c.visible {
		c.keepOpen = true
	}
}

// PointerDown handles a press anywhere outside the popup.
func (c *Controller) PointerDown() {
	if c.visible {
		c.hide()
	}
}

// DetailScrolled hides the detail panel.
func (c *Controller) DetailScrolled() {
	c.view.HideDetail()
}

// Dispose cancels pending timers, stops listening to the surface and hides
// the popup. The controller ignores every call afterwards.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.cancelHide()
	c.hoverGen++
	if c.hoverTimer != nil {
		c.hoverTimer.Stop()
		c.hoverTimer = nil
	}
	c.hoverLocked = false
	if c.removeModify != nil {
		c.removeModify()
	}
	c.hide()
	c.disposed = true
}

// State returns the popup visibility.
func (c *Controller) State() State {
	if c.visible {
		return Visible
	}
	return Hidden
}

// Visible reports whether the popup is shown.
func (c *Controller) Visible() bool {
	return c.visible
}

// Selected returns the selected row index.
func (c *Controller) Selected() int {
	return c.selected
}

// SelectedProposal returns the proposal at the selected row.
func (c *Controller) SelectedProposal() (suggest.Proposal, bool) {
	if !c.inRange(c.selected) {
		return suggest.Proposal{}, false
	}
	return c.proposals[c.selected], true
}

// Proposals returns a copy of the current proposal list.
func (c *Controller) Proposals() []suggest.Proposal {
	return append([]suggest.Proposal(nil), c.proposals...)
}

// Overflowing reports whether the rows exceed VisibleItemCount rows.
func (c *Controller) Overflowing() bool {
	return c.overflow
}

// HoverLocked reports whether hover selection is suppressed.
func (c *Controller) HoverLocked() bool {
	return c.hoverLocked
}

// Position returns where the popup was last placed.
func (c *Controller) Position() surface.Point {
	return c.pos
}

func (c *Controller) show() {
	caret := surface.Caret(c.surface)
	proposals := c.processor.ComputeProposals(c.surface, caret)
	if len(proposals) == 0 {
		c.hide()
		return
	}

	c.heights = c.view.Render(proposals)
	c.tops = make([]int, len(c.heights))
	listHeight, total := 0, 0
	for i, h := range c.heights {
		c.tops[i] = total
		total += h
		if c.opts.VisibleItemCount > 0 && i < c.opts.VisibleItemCount {
			listHeight += h
		}
	}
	c.overflow = c.opts.VisibleItemCount > 0 && total > listHeight
	c.view.SetOverflow(c.overflow)
	c.view.SetListHeight(listHeight)

	// every proposal replaces the same span, anchor at its start
	anchor := c.surface.CharCoords(proposals[len(proposals)-1].Offset())
	bounds := c.surface.Bounds()
	x := anchor.X
	if maxX := bounds.Right() - c.view.Width(); x > maxX {
		x = maxX
	}
	if x < bounds.X {
		x = bounds.X
	}
	c.pos = surface.Point{X: x, Y: anchor.Y}
	c.view.Place(x, anchor.Y)
	c.view.ScrollTo(0)

	c.proposals = proposals
	c.visible = true
	c.highlighted = -1
	c.selected = 0
	c.lockHover()
	c.selectProposal(0, true)

	log.Debugf("Showing %d proposals at (%d, %d), overflow=%v", len(proposals), x, anchor.Y, c.overflow)
}

func (c *Controller) hide() {
	c.view.HideDetail()
	c.view.Hide()
	c.visible = false
	c.proposals = nil
	c.tops = nil
	c.heights = nil
	c.selected = 0
	c.highlighted = -1
	c.overflow = false
	c.keepOpen = false
}

func (c *Controller) apply(p suggest.Proposal) {
	c.applying = true
	defer func() { c.applying = false }()
	p.Apply(c.surface)
	log.Debugf("Applied proposal '%s' at [%d, %d)", p.Text(), p.Offset(), p.Offset()+p.Length())
}

func (c *Controller) selectProposal(ix int, scroll bool) {
	if !c.inRange(ix) {
		return
	}
	c.view.Highlight(c.highlighted, ix)
	c.highlighted = ix
	c.selected = ix
	if scroll {
		c.scrollIntoView(ix)
	}
	c.showDetail(ix)
}

// scrollIntoView aligns row ix with the nearest clipped edge of the list.
func (c *Controller) scrollIntoView(ix int) {
	rowTop, rowHeight := c.tops[ix], c.heights[ix]
	scrollTop, height := c.view.Viewport()
	switch {
	case rowTop < scrollTop:
		c.view.ScrollTo(rowTop)
	case rowTop+rowHeight > scrollTop+height:
		c.view.ScrollTo(rowTop + rowHeight - height)
	}
}

func (c *Controller) showDetail(ix int) {
	text := c.proposals[ix].DetailText()
	if text == "" {
		c.view.HideDetail()
		return
	}
	scrollTop, _ := c.view.Viewport()
	side := SideRight
	if c.pos.X+c.view.Width()+c.view.DetailWidth(text) > c.surface.Bounds().Right() {
		side = SideLeft
	}
	c.view.ShowDetail(text, c.tops[ix]-scrollTop, side)
}

// lockHover suppresses hover selection for HoverLock, replacing any pending
// unlock.
func (c *Controller) lockHover() {
	c.hoverGen++
	gen := c.hoverGen
	if c.hoverTimer != nil {
		c.hoverTimer.Stop()
	}
	c.hoverLocked = true
	c.hoverTimer = c.opts.Scheduler.AfterFunc(c.opts.HoverLock, func() {
		if c.disposed || gen != c.hoverGen {
			return
		}
		c.hoverLocked = false
		c.hoverTimer = nil
	})
}

func (c *Controller) cancelHide() {
	c.hideGen++
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}

// isNil also catches typed nils such as a (*surface.Buffer)(nil) surface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func (c *Controller) inRange(ix int) bool {
	return ix >= 0 && ix < len(c.proposals)
}
