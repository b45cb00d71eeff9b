package levenshtein

import (
	"errors"
	"testing"
)

// The canonical scenario: {"cat","cats","bat","dog"} around "cat".
func TestSearchScenario(t *testing.T) {
	trie := NewTrie([]string{"cat", "cats", "bat", "dog"})
	a, err := NewAutomaton("cat", 1)
	if err != nil {
		t.Fatalf("NewAutomaton: %v", err)
	}

	got := make(map[string]int)
	for _, m := range Search(trie, a) {
		got[m.Term] = m.Distance
	}

	want := map[string]int{"cat": 0, "cats": 1, "bat": 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for term, d := range want {
		if got[term] != d {
			t.Errorf("term %q: distance = %d, want %d", term, got[term], d)
		}
	}
	if _, ok := got["dog"]; ok {
		t.Error("\"dog\" (distance 3) must be pruned at k=1")
	}
}

// The query term itself is yielded with distance 0; excluding it is the
// index facade's policy, not the traversal's.
func TestSearchIncludesQueryTerm(t *testing.T) {
	trie := NewTrie([]string{"cat"})
	a, err := NewAutomaton("cat", 2)
	if err != nil {
		t.Fatalf("NewAutomaton: %v", err)
	}
	matches := Search(trie, a)
	if len(matches) != 1 || matches[0].Term != "cat" || matches[0].Distance != 0 {
		t.Errorf("matches = %v, want [{cat 0}]", matches)
	}
}

func TestSearchEmptyVocabulary(t *testing.T) {
	trie := NewTrie(nil)
	a, err := NewAutomaton("cat", 2)
	if err != nil {
		t.Fatalf("NewAutomaton: %v", err)
	}
	if matches := Search(trie, a); len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestIntersectVisitorErrorStopsWalk(t *testing.T) {
	trie := NewTrie([]string{"aa", "ab", "ac"})
	a, err := NewAutomaton("aa", 2)
	if err != nil {
		t.Fatalf("NewAutomaton: %v", err)
	}

	stop := errors.New("stop")
	visited := 0
	err = Intersect(trie, a, func(term string, distance int) error {
		visited++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want the visitor's error", err)
	}
	if visited != 1 {
		t.Errorf("visited %d terms after stopping, want 1", visited)
	}
}

func TestSearchRepeatable(t *testing.T) {
	trie := NewTrie([]string{"cat", "cats", "bat"})
	a, err := NewAutomaton("cat", 1)
	if err != nil {
		t.Fatalf("NewAutomaton: %v", err)
	}
	first := Search(trie, a)
	second := Search(trie, a)
	if len(first) != len(second) {
		t.Fatalf("second run returned %d matches, first %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
