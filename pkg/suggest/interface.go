// Package suggest is the core, detecting the word around the caret and turning dictionary matches into proposals.
package suggest

// Text is the read side of a surface the processor scans.
type Text interface {
	// Char returns the character at offset, false outside the text
	Char(offset int) (rune, bool)
}

// Editable is the write side of a surface a proposal is applied to.
type Editable interface {
	// Replace substitutes [start, end) with text
	Replace(text string, start, end int)

	// SetSelection selects [start, end); equal values place the caret
	SetSelection(start, end int)
}

// Processor computes completion proposals for a caret offset
type Processor interface {
	// ComputeProposals returns the proposals for the word around caret,
	// empty when there is nothing to complete
	ComputeProposals(text Text, caret int) []Proposal
}
