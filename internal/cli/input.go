// Package cli handles cmd line input and proposals for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordassist/internal/logger"
	"github.com/bastiangx/wordassist/internal/utils"
	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/bastiangx/wordassist/pkg/surface"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// CaretMarker marks the caret position in an input line.
const CaretMarker = '|'

var (
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	previewStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler reads lines of text, places the caret at the '|' marker (or
// the end of the line) and prints the proposals the processor computes there,
// each with a preview of the line after applying it.
type InputHandler struct {
	processor    suggest.Processor
	suggestLimit int
	requestCount int
	in           io.Reader
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler. Results go to
// out, diagnostics to the global logger.
func NewInputHandler(processor suggest.Processor, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		processor:    processor,
		suggestLimit: limit,
		in:           in,
		out:          logger.NewTo(out, "", false),
	}
}

// Start runs the read loop until the input ends.
func (h *InputHandler) Start() error {
	h.out.Print("WordAssist CLI [BETA]")
	if stats, ok := h.processor.(interface{ Stats() map[string]int }); ok {
		h.out.Printf("%s words loaded", utils.FormatWithCommas(stats.Stats()["totalWords"]))
	}
	h.out.Print("type text, '|' marks the caret, press Enter to see proposals (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// parseLine strips the first caret marker and returns its rune offset, or
// the end of the line when there is none.
func parseLine(line string) (string, int) {
	ix := strings.IndexRune(line, CaretMarker)
	if ix < 0 {
		return line, len([]rune(line))
	}
	return line[:ix] + line[ix+1:], len([]rune(line[:ix]))
}

// preview renders text after applying p, with the marker at the new caret.
func preview(text string, p suggest.Proposal) string {
	buf := surface.NewBuffer(text)
	p.Apply(buf)
	runes := []rune(buf.Content())
	caret := surface.Caret(buf)
	return string(runes[:caret]) + string(CaretMarker) + string(runes[caret:])
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	text, caret := parseLine(line)
	buf := surface.NewBuffer(text)
	surface.SetCaret(buf, caret)

	span, prefix := suggest.WordSpan(buf, caret)
	if prefix == "" {
		h.out.Printf("No word before the caret at %d", caret)
		return
	}

	start := time.Now()
	proposals := h.processor.ComputeProposals(buf, caret)
	log.Debugf("Took [ %v ] for prefix '%s' (request %d)", time.Since(start), prefix, h.requestCount)

	if len(proposals) == 0 {
		h.out.Printf("No proposals for prefix '%s' at [%d, %d)", prefix, span.Start, span.End)
		return
	}

	shown := proposals
	if h.suggestLimit > 0 && len(shown) > h.suggestLimit {
		shown = shown[:h.suggestLimit]
	}
	h.out.Printf("Found %d proposals for prefix '%s' at [%d, %d):", len(proposals), prefix, span.Start, span.End)
	for i, p := range shown {
		h.out.Printf("%2d. %-24s %s", i+1, wordStyle.Render(p.DisplayText()), previewStyle.Render(preview(text, p)))
		if d := p.DetailText(); d != "" {
			h.out.Printf("    %s", d)
		}
	}
	if len(shown) < len(proposals) {
		h.out.Printf("    ... %d more", len(proposals)-len(shown))
	}
}
