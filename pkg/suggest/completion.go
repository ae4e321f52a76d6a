package suggest

import (
	"sync/atomic"
	"unicode"

	"github.com/bastiangx/wordassist/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// MaxRightScan caps how many characters right of the caret are scanned when
// looking for the end of the current word.
const MaxRightScan = 1000

// IsWordChar reports whether r can be part of a completable word. Whitespace,
// sentence punctuation, brackets and quotes end a word; anything else,
// including every Unicode letter, digit and symbol outside that set, is part
// of one.
func IsWordChar(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '.', ',', '!', '?', '#', '%', '^', '$',
		'(', ')', '{', '}', '<', '>',
		'\'', '"', '«', '»':
		return false
	}
	return true
}

// Span is the run of word characters around the caret, [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// WordSpan scans left and right of caret for word characters. It returns the
// word span and the prefix, the part of the word left of the caret.
func WordSpan(text Text, caret int) (Span, string) {
	if caret < 0 {
		caret = 0
	}

	var prefix []rune
	for off := caret - 1; off >= 0; off-- {
		r, ok := text.Char(off)
		if !ok || !IsWordChar(r) {
			break
		}
		prefix = append(prefix, r)
	}
	for i, j := 0, len(prefix)-1; i < j; i, j = i+1, j-1 {
		prefix[i], prefix[j] = prefix[j], prefix[i]
	}

	right := caret
	for scanned := 0; scanned < MaxRightScan; scanned++ {
		r, ok := text.Char(right)
		if !ok || !IsWordChar(r) {
			break
		}
		right++
	}

	return Span{Start: caret - len(prefix), End: right}, string(prefix)
}

// WordProcessor proposes dictionary words that complete the prefix left of
// the caret. The dictionary is swapped atomically on rebuild, so a
// WordProcessor can serve lookups while another goroutine calls SetWords.
type WordProcessor struct {
	dict atomic.Pointer[dictionary.Dictionary]
}

// NewWordProcessor creates a processor indexing words.
func NewWordProcessor(words []string) *WordProcessor {
	p := &WordProcessor{}
	p.SetWords(words)
	return p
}

// SetWords rebuilds the dictionary from words, discarding the previous one.
func (p *WordProcessor) SetWords(words []string) {
	p.dict.Store(dictionary.FromWords(words))
}

// SetEntries rebuilds the dictionary from entries carrying detail text.
func (p *WordProcessor) SetEntries(entries []dictionary.Entry) {
	p.dict.Store(dictionary.New(entries))
}

// Dictionary returns the current dictionary.
func (p *WordProcessor) Dictionary() *dictionary.Dictionary {
	return p.dict.Load()
}

// Suggest returns the words completing prefix in dictionary order.
func (p *WordProcessor) Suggest(prefix string) []string {
	entries := p.dict.Load().Lookup(prefix)
	if len(entries) == 0 {
		return nil
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words
}

// ComputeProposals returns one proposal per dictionary word that completes
// the prefix left of caret. Every proposal replaces the whole word around the
// caret, including the part right of it.
func (p *WordProcessor) ComputeProposals(text Text, caret int) []Proposal {
	span, prefix := WordSpan(text, caret)
	if prefix == "" {
		return nil
	}

	entries := p.dict.Load().Lookup(prefix)
	if len(entries) == 0 {
		log.Debugf("No proposals for prefix '%s'", prefix)
		return nil
	}

	proposals := make([]Proposal, len(entries))
	for i, e := range entries {
		proposals[i] = NewProposal(
			e.Word,
			span.Start,
			span.Len(),
			span.Start+len([]rune(e.Word)),
			e.Detail,
		)
	}
	log.Debugf("Computed %d proposals for prefix '%s' at [%d, %d)", len(proposals), prefix, span.Start, span.End)
	return proposals
}

// Stats returns statistics about the loaded dictionary
func (p *WordProcessor) Stats() map[string]int {
	d := p.dict.Load()
	return map[string]int{
		"totalWords": d.Len(),
		"buckets":    d.BucketCount(),
	}
}
