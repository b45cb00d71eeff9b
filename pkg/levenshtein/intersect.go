package levenshtein

// Match pairs a vocabulary term with its exact edit distance from the
// query the automaton was built for.
type Match struct {
	Term     string
	Distance int
}

// Intersect walks the trie and the automaton in lockstep, depth first,
// and calls visit for every vocabulary term the automaton accepts, with
// its exact edit distance. Subtrees whose state is dead are skipped
// without being explored. Each term is visited at most once; the query
// term itself, if present in the vocabulary, is visited like any other.
// A non-nil error from visit stops the walk and is returned as is.
func Intersect(t *Trie, a *Automaton, visit func(term string, distance int) error) error {
	if t == nil || a == nil {
		return nil
	}
	path := make([]rune, 0, len(a.query)+a.maxDist)

	var walk func(n int32, s State) error
	walk = func(n int32, s State) error {
		if t.nodes[n].terminal {
			if d, ok := a.Distance(s); ok {
				if err := visit(string(path), d); err != nil {
					return err
				}
			}
		}
		for _, e := range t.nodes[n].edges {
			next := a.Step(s, e.label)
			if a.Dead(next) {
				continue
			}
			path = append(path, e.label)
			if err := walk(e.node, next); err != nil {
				return err
			}
			path = path[:len(path)-1]
		}
		return nil
	}
	return walk(0, a.Start())
}

// Search collects every (term, distance) pair the intersection yields.
// Result size is bounded by the vocabulary terms within the automaton's
// distance ball, not by vocabulary size.
func Search(t *Trie, a *Automaton) []Match {
	var matches []Match
	Intersect(t, a, func(term string, distance int) error {
		matches = append(matches, Match{Term: term, Distance: distance})
		return nil
	})
	return matches
}
