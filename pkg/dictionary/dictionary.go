/*
Package dictionary holds the word index behind content assist proposals.

Words are grouped into buckets keyed by their first character. Each bucket
keeps insertion order and duplicates, so lookups return candidates in exactly
the order they were supplied:

	d := dictionary.FromWords([]string{"cat", "caterpillar", "dog"})
	d.Lookup("ca") // cat, caterpillar

A patricia trie indexes every distinct word to its bucket positions. Lookup
walks the trie subtree under the prefix instead of scanning the whole bucket,
then restores bucket order from the recorded positions.

A Dictionary is never mutated after construction. Rebuilding means building a
new one and swapping the pointer, see suggest.WordProcessor.
*/
package dictionary

import (
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry is a single dictionary word with optional detail text shown next to
// the proposal when it is highlighted.
type Entry struct {
	Word   string `msgpack:"w" toml:"word"`
	Detail string `msgpack:"d,omitempty" toml:"detail"`
}

// Dictionary is an immutable bucketed word index.
type Dictionary struct {
	buckets map[rune][]Entry
	index   *patricia.Trie
	words   int
}

// FromWords builds a dictionary from plain words without detail text.
func FromWords(words []string) *Dictionary {
	entries := make([]Entry, len(words))
	for i, w := range words {
		entries[i] = Entry{Word: w}
	}
	return New(entries)
}

// New builds a dictionary from entries. Empty words have no first character
// to be keyed by and are skipped.
func New(entries []Entry) *Dictionary {
	d := &Dictionary{
		buckets: make(map[rune][]Entry),
		index:   patricia.NewTrie(),
	}

	skipped := 0
	for _, e := range entries {
		if e.Word == "" {
			skipped++
			continue
		}
		first, _ := utf8.DecodeRuneInString(e.Word)
		pos := len(d.buckets[first])
		d.buckets[first] = append(d.buckets[first], e)

		key := patricia.Prefix(e.Word)
		if item := d.index.Get(key); item != nil {
			d.index.Set(key, append(item.([]int), pos))
		} else {
			d.index.Insert(key, []int{pos})
		}
		d.words++
	}

	if skipped > 0 {
		log.Debugf("Skipped %d empty dictionary entries", skipped)
	}
	log.Debugf("Indexed %d words in %d buckets", d.words, len(d.buckets))
	return d
}

// Len returns the number of indexed words, duplicates included.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.words
}

// BucketCount returns the number of distinct first characters.
func (d *Dictionary) BucketCount() int {
	if d == nil {
		return 0
	}
	return len(d.buckets)
}

// Bucket returns a copy of the words keyed by first, in insertion order.
func (d *Dictionary) Bucket(first rune) []Entry {
	if d == nil {
		return nil
	}
	b := d.buckets[first]
	if len(b) == 0 {
		return nil
	}
	out := make([]Entry, len(b))
	copy(out, b)
	return out
}

// Lookup returns the entries that start with prefix and are strictly longer
// than it, in bucket order. Matching is case-sensitive.
func (d *Dictionary) Lookup(prefix string) []Entry {
	if d == nil || prefix == "" {
		return nil
	}
	first, _ := utf8.DecodeRuneInString(prefix)
	bucket, ok := d.buckets[first]
	if !ok {
		return nil
	}

	var hits []int
	err := d.index.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		// exact match has nothing left to complete
		if string(p) == prefix {
			return nil
		}
		hits = append(hits, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary subtree: %v", err)
		return nil
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Ints(hits)
	result := make([]Entry, len(hits))
	for i, pos := range hits {
		result[i] = bucket[pos]
	}
	return result
}
