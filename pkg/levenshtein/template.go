package levenshtein

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// template holds the per-k pieces every automaton with the same bound
// shares: the band geometry and the prototype start row 0..k. In
// practice k is drawn from a tiny fixed set, so templates are built once
// per process and retained for its lifetime.
type template struct {
	maxDist int
	width   int
	initRow []int
}

var (
	tmplMu    sync.RWMutex
	templates = make(map[int]*template)
	tmplGroup singleflight.Group
)

// templateFor returns the shared template for bound k, building it on
// first use. singleflight collapses concurrent first requests for the
// same k into one build.
func templateFor(k int) *template {
	tmplMu.RLock()
	t, ok := templates[k]
	tmplMu.RUnlock()
	if ok {
		return t
	}

	v, _, _ := tmplGroup.Do(strconv.Itoa(k), func() (any, error) {
		tmplMu.RLock()
		t, ok := templates[k]
		tmplMu.RUnlock()
		if ok {
			return t, nil
		}

		row := make([]int, k+1)
		for i := range row {
			row[i] = i
		}
		t = &template{maxDist: k, width: 2*k + 1, initRow: row}

		tmplMu.Lock()
		templates[k] = t
		tmplMu.Unlock()
		return t, nil
	})
	return v.(*template)
}
