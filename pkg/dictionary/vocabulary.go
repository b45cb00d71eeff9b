// Package dictionary loads and stores the vocabulary the similarity
// index is built over. Terms live in a patricia trie, which deduplicates
// on insert and enumerates in stable lexicographic order.
package dictionary

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// Vocabulary is a deduplicating term store. It satisfies the vocabulary
// source the similarity index consumes at build time.
type Vocabulary struct {
	trie  *patricia.Trie
	count int
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{trie: patricia.NewTrie()}
}

// Add inserts a term. It reports whether the term was new; inserting the
// same term twice leaves the vocabulary unchanged.
func (v *Vocabulary) Add(term string) bool {
	if v.trie.Insert(patricia.Prefix(term), true) {
		v.count++
		return true
	}
	return false
}

// Has reports whether the exact term is stored.
func (v *Vocabulary) Has(term string) bool {
	return v.trie.Get(patricia.Prefix(term)) != nil
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return v.count }

// Terms returns a snapshot of every stored term, in trie visit order.
func (v *Vocabulary) Terms() []string {
	terms := make([]string, 0, v.count)
	v.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		terms = append(terms, string(p))
		return nil
	})
	return terms
}
