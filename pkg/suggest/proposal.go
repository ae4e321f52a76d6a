package suggest

// Proposal is one offered completion: the text to insert, the span it
// replaces and where the caret lands afterwards. Proposals are immutable.
type Proposal struct {
	text   string
	offset int
	length int
	caret  int
	detail string
}

// NewProposal builds a proposal replacing [offset, offset+length) with text
// and leaving the caret at caret. Negative offsets and lengths are clamped
// to zero.
func NewProposal(text string, offset, length, caret int, detail string) Proposal {
	if offset < 0 {
		offset = 0
	}
	if length < 0 {
		length = 0
	}
	return Proposal{
		text:   text,
		offset: offset,
		length: length,
		caret:  caret,
		detail: detail,
	}
}

// Text returns the replacement text.
func (p Proposal) Text() string { return p.text }

// Offset returns the start of the replaced span.
func (p Proposal) Offset() int { return p.offset }

// Length returns the length of the replaced span.
func (p Proposal) Length() int { return p.length }

// CaretAfter returns the caret offset after Apply.
func (p Proposal) CaretAfter() int { return p.caret }

// DisplayText returns the text shown in the proposal list.
func (p Proposal) DisplayText() string { return p.text }

// DetailText returns the secondary info shown when the proposal is
// highlighted, empty if there is none.
func (p Proposal) DetailText() string { return p.detail }

// Apply replaces the span with the proposal text, then moves the caret.
func (p Proposal) Apply(dst Editable) {
	dst.Replace(p.text, p.offset, p.offset+p.length)
	dst.SetSelection(p.caret, p.caret)
}

func (p Proposal) String() string {
	return p.text
}
