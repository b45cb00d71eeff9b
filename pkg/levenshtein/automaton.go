// Package levenshtein implements the approximate matching core: a static
// prefix tree over a vocabulary, a bounded-edit-distance automaton, and
// the intersection traversal that enumerates every vocabulary term within
// a given edit distance of a query without scoring the whole vocabulary.
package levenshtein

import (
	"errors"
	"fmt"
)

// ErrNegativeDistance is returned when an automaton is requested with a
// negative maximum distance.
var ErrNegativeDistance = errors.New("levenshtein: max distance must be non-negative")

// Automaton accepts strings within a fixed edit distance of one query
// term. It tracks a banded window of the edit-distance matrix row, at
// most 2k+1 cells wide, so a single Step costs O(k) regardless of how
// long the traversed path grows. An Automaton is immutable and safe to
// share; states are per-traversal values.
type Automaton struct {
	query   []rune
	maxDist int
	tmpl    *template
}

// State is the banded matrix row after consuming depth path characters.
// cost[i] holds the edit distance between the consumed path and the
// query prefix of length lo+i; cells above the distance bound hold the
// sentinel maxDist+1. An empty window means the branch is dead.
type State struct {
	depth int
	lo    int
	cost  []int
}

// NewAutomaton builds a bounded-distance automaton for the query term.
// An empty query is valid, as is a bound larger than the query length.
func NewAutomaton(term string, maxDistance int) (*Automaton, error) {
	if maxDistance < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrNegativeDistance, maxDistance)
	}
	return &Automaton{
		query:   []rune(term),
		maxDist: maxDistance,
		tmpl:    templateFor(maxDistance),
	}, nil
}

// MaxDistance returns the bound k the automaton was built with.
func (a *Automaton) MaxDistance() int { return a.maxDist }

// Start returns the state before any path character has been consumed:
// query offsets 0..k reachable by pure insertion.
func (a *Automaton) Start() State {
	hi := a.maxDist
	if hi > len(a.query) {
		hi = len(a.query)
	}
	s := State{depth: 0, lo: 0, cost: make([]int, hi+1)}
	copy(s.cost, a.tmpl.initRow)
	return s
}

// Step consumes one path character and returns the successor state,
// using the banded dynamic-programming recurrence with unit costs for
// insertion, deletion and substitution. Characters outside the query
// alphabet simply never match; they are not an error.
func (a *Automaton) Step(s State, r rune) State {
	depth := s.depth + 1
	lo := depth - a.maxDist
	if lo < 0 {
		lo = 0
	}
	hi := depth + a.maxDist
	if hi > len(a.query) {
		hi = len(a.query)
	}
	if lo > hi {
		// The band has slid past the end of the query: every
		// completion of this path exceeds the bound.
		return State{depth: depth, lo: lo}
	}

	inf := a.maxDist + 1
	next := State{depth: depth, lo: lo, cost: make([]int, hi-lo+1)}
	prevLo, prevHi := s.lo, s.lo+len(s.cost)-1

	for j := lo; j <= hi; j++ {
		c := inf
		// Delete the path character.
		if j >= prevLo && j <= prevHi {
			if v := s.cost[j-prevLo] + 1; v < c {
				c = v
			}
		}
		// Insert the query character query[j-1].
		if j-1 >= lo {
			if v := next.cost[j-1-lo] + 1; v < c {
				c = v
			}
		}
		// Match or substitute against query[j-1].
		if j >= 1 && j-1 >= prevLo && j-1 <= prevHi {
			v := s.cost[j-1-prevLo]
			if r != a.query[j-1] {
				v++
			}
			if v < c {
				c = v
			}
		}
		if c > a.maxDist {
			c = inf
		}
		next.cost[j-lo] = c
	}
	return next
}

// Dead reports whether no completion of the current path can stay within
// the bound. Errors only grow with further characters, so a dead state
// prunes its whole subtree.
func (a *Automaton) Dead(s State) bool {
	for _, c := range s.cost {
		if c <= a.maxDist {
			return false
		}
	}
	return true
}

// Distance returns the exact edit distance between the consumed path and
// the full query, if the path is accepted at this state. The second
// return is false when the full-query cell is outside the band or above
// the bound.
func (a *Automaton) Distance(s State) (int, bool) {
	n := len(a.query)
	if len(s.cost) == 0 || n < s.lo || n > s.lo+len(s.cost)-1 {
		return 0, false
	}
	d := s.cost[n-s.lo]
	if d > a.maxDist {
		return 0, false
	}
	return d, true
}
