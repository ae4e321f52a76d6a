package suggest

import (
	"testing"

	"github.com/bastiangx/wordassist/pkg/surface"
)

func TestProposalApply(t *testing.T) {
	testCases := []struct {
		content     string
		proposal    Proposal
		expected    string
		caret       int
		description string
	}{
		{
			"The ca",
			NewProposal("caterpillar", 4, 2, 15, ""),
			"The caterpillar", 15,
			"replace prefix at end",
		},
		{
			"The ca sat",
			NewProposal("cat", 4, 2, 7, ""),
			"The cat sat", 7,
			"neighbours untouched",
		},
		{
			"x",
			NewProposal("hello", 1, 0, 6, ""),
			"xhello", 6,
			"zero length span inserts",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			buf := surface.NewBuffer(tc.content)
			tc.proposal.Apply(buf)
			if buf.Content() != tc.expected {
				t.Errorf("content = %q, want %q", buf.Content(), tc.expected)
			}
			if sel := buf.Selection(); sel.Start != tc.caret || sel.End != tc.caret {
				t.Errorf("selection = %+v, want caret %d", sel, tc.caret)
			}
		})
	}
}

func TestNewProposalClamps(t *testing.T) {
	p := NewProposal("w", -2, -1, 1, "info")
	if p.Offset() != 0 || p.Length() != 0 {
		t.Errorf("offset %d length %d, want 0 0", p.Offset(), p.Length())
	}
	if p.DisplayText() != "w" || p.String() != "w" || p.DetailText() != "info" {
		t.Errorf("accessors: %q %q %q", p.DisplayText(), p.String(), p.DetailText())
	}
}

// recorder checks Apply replaces before it moves the caret.
type recorder struct {
	calls []string
}

func (r *recorder) Replace(text string, start, end int) { r.calls = append(r.calls, "replace") }
func (r *recorder) SetSelection(start, end int)         { r.calls = append(r.calls, "select") }

func TestProposalApplyOrder(t *testing.T) {
	r := &recorder{}
	NewProposal("a", 0, 0, 1, "").Apply(r)
	if len(r.calls) != 2 || r.calls[0] != "replace" || r.calls[1] != "select" {
		t.Errorf("calls = %v, want [replace select]", r.calls)
	}
}
