/*
Package assist wires a word dictionary and the proposal popup onto a text
surface, the one-call setup for a host:

	ca, err := assist.New(buf, view, words, assist.Options{
		Scheduler: popup.PostScheduler(func(fn func()) { events <- fn }),
	})
	if err != nil {
		return err
	}
	defer ca.Close()

Typing into the surface now shows proposals; the host forwards keys, pointer
and focus events to ca.Controller(). Timer callbacks arrive through the
Scheduler and the host runs them on the same loop as every other call.
*/
package assist

import (
	"time"

	"github.com/bastiangx/wordassist/pkg/config"
	"github.com/bastiangx/wordassist/pkg/dictionary"
	"github.com/bastiangx/wordassist/pkg/popup"
	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/bastiangx/wordassist/pkg/surface"
	"github.com/charmbracelet/log"
)

// Options tune the popup. Zero values select the defaults, except Scheduler
// which is required.
type Options struct {
	VisibleItemCount int
	HoverLock        time.Duration
	HideDelay        time.Duration
	Scheduler        popup.Scheduler
}

// OptionsFromConfig maps the [assist] config section onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		VisibleItemCount: cfg.Assist.VisibleItemCount,
		HoverLock:        cfg.Assist.HoverLock(),
		HideDelay:        cfg.Assist.HideDelay(),
	}
}

// ContentAssist is content assist attached to one surface.
type ContentAssist struct {
	processor  *suggest.WordProcessor
	controller *popup.Controller
}

// New attaches content assist to s, proposing from words. A nil view selects
// a headless popup.ListView.
func New(s surface.Surface, view popup.View, words []string, opts Options) (*ContentAssist, error) {
	processor := suggest.NewWordProcessor(words)
	controller, err := popup.New(s, processor, view, popup.Options{
		VisibleItemCount: opts.VisibleItemCount,
		HoverLock:        opts.HoverLock,
		HideDelay:        opts.HideDelay,
		Scheduler:        opts.Scheduler,
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("Content assist attached with %d words", processor.Dictionary().Len())
	return &ContentAssist{processor: processor, controller: controller}, nil
}

// SetWords replaces the dictionary. Proposals already on screen are kept
// until the next content change.
func (a *ContentAssist) SetWords(words []string) {
	a.processor.SetWords(words)
}

// SetEntries replaces the dictionary with words carrying detail text.
func (a *ContentAssist) SetEntries(entries []dictionary.Entry) {
	a.processor.SetEntries(entries)
}

func (a *ContentAssist) Controller() *popup.Controller {
	return a.controller
}

func (a *ContentAssist) Processor() *suggest.WordProcessor {
	return a.processor
}

// Close detaches from the surface and cancels pending timers.
func (a *ContentAssist) Close() {
	a.controller.Dispose()
}
