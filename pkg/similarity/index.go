package similarity

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/bizzyvinci/levserve/pkg/levenshtein"
)

// Vocabulary is the consumed term source: anything that can hand the
// index its distinct terms once at build time.
type Vocabulary interface {
	Terms() []string
}

// Result pairs a vocabulary term with its similarity to the query term.
type Result struct {
	Term  string
	Score float64
}

// Options is the constructor-time configuration surface of the index.
type Options struct {
	// Alpha is the multiplicative factor of the scoring formula.
	Alpha float64
	// Beta is the exponential factor of the scoring formula.
	Beta float64
	// Threshold drops matches scoring below it; clamped to [0, 1].
	Threshold float64
	// MaxDistance bounds the farthest edit distance ever explored,
	// regardless of the threshold-derived bound.
	MaxDistance int
}

// DefaultOptions returns the standard factors: alpha 1.8, beta 5.0,
// no threshold, search radius 2.
func DefaultOptions() Options {
	return Options{Alpha: 1.8, Beta: 5.0, Threshold: 0.0, MaxDistance: 2}
}

// Index answers "which vocabulary terms are within reach of this query,
// and how similar are they" through a trie/automaton intersection
// instead of a scan over the vocabulary. It is immutable after NewIndex
// and safe for concurrent MostSimilar calls; each call allocates its own
// automaton and traversal state.
type Index struct {
	alpha       float64
	beta        float64
	threshold   float64
	maxDistance int

	trie  *levenshtein.Trie
	terms int
}

// NewIndex builds an index over the vocabulary. The vocabulary is
// enumerated exactly once; duplicate terms are indexed once.
func NewIndex(vocab Vocabulary, opts Options) (*Index, error) {
	if opts.Alpha < 0 || opts.Beta < 0 {
		return nil, fmt.Errorf("%w, got alpha=%v beta=%v", ErrInvalidFactor, opts.Alpha, opts.Beta)
	}
	if opts.MaxDistance < 0 {
		return nil, fmt.Errorf("%w, got %d", levenshtein.ErrNegativeDistance, opts.MaxDistance)
	}

	terms := vocab.Terms()
	trie := levenshtein.NewTrie(terms)
	log.Debugf("Index built: %d terms, %d trie nodes, radius %d",
		trie.Len(), trie.NodeCount(), opts.MaxDistance)

	return &Index{
		alpha:       opts.Alpha,
		beta:        opts.Beta,
		threshold:   clamp01(opts.Threshold),
		maxDistance: opts.MaxDistance,
		trie:        trie,
		terms:       trie.Len(),
	}, nil
}

// Len returns the number of distinct indexed terms.
func (ix *Index) Len() int { return ix.terms }

// MostSimilar returns up to topn vocabulary terms most similar to the
// query, sorted by descending score with a lexicographic tie-break. The
// query itself is never included, nor are matches with a non-positive
// score.
func (ix *Index) MostSimilar(term string, topn int) ([]Result, error) {
	if topn <= 0 || ix.terms == 0 {
		return nil, nil
	}

	queryLen := len([]rune(term))
	radius, err := ix.radius(queryLen)
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		// Threshold unreachable at any distance.
		return nil, nil
	}

	automaton, err := levenshtein.NewAutomaton(term, radius)
	if err != nil {
		return nil, err
	}

	var results []Result
	err = levenshtein.Intersect(ix.trie, automaton, func(match string, distance int) error {
		if match == term {
			return nil
		}
		score, err := Score(distance, queryLen, len([]rune(match)), ix.alpha, ix.beta)
		if err != nil {
			return err
		}
		if score <= 0 {
			return nil
		}
		results = append(results, Result{Term: match, Score: score})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Term < results[j].Term
	})
	if len(results) > topn {
		results = results[:topn]
	}
	return results, nil
}

// radius derives the effective search bound: the configured max distance
// capped by what the similarity threshold makes worth exploring. Matches
// can be up to maxDistance runes longer than the query, so the inversion
// uses that worst-case length.
func (ix *Index) radius(queryLen int) (int, error) {
	if ix.threshold <= 0 {
		return ix.maxDistance, nil
	}
	bound, err := MaxDistanceForThreshold(ix.threshold, queryLen+ix.maxDistance, ix.alpha, ix.beta)
	if err != nil {
		return 0, err
	}
	if bound < ix.maxDistance {
		return bound, nil
	}
	return ix.maxDistance, nil
}
