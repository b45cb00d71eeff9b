package levenshtein

import "sort"

// edge links a node to one child by its rune label.
type edge struct {
	label rune
	node  int32
}

// trieNode is one prefix in the arena. Edges are kept sorted by label so
// the final structure does not depend on insertion order.
type trieNode struct {
	terminal bool
	edges    []edge
}

// Trie is a static prefix tree over a vocabulary, stored as a flat arena
// of nodes addressed by index. Node 0 is the root (empty prefix).
// The tree is read-only after NewTrie returns and safe for concurrent
// traversal.
type Trie struct {
	nodes []trieNode
	size  int
}

// NewTrie builds a prefix tree over the given terms. Duplicate terms are
// idempotent and insertion order does not affect the final structure.
func NewTrie(terms []string) *Trie {
	t := &Trie{nodes: make([]trieNode, 1, len(terms)*2+1)}
	for _, term := range terms {
		t.insert(term)
	}
	return t
}

func (t *Trie) insert(term string) {
	cur := int32(0)
	for _, r := range term {
		next := t.child(cur, r)
		if next < 0 {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, trieNode{})
			n := &t.nodes[cur]
			i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].label >= r })
			n.edges = append(n.edges, edge{})
			copy(n.edges[i+1:], n.edges[i:])
			n.edges[i] = edge{label: r, node: next}
		}
		cur = next
	}
	if !t.nodes[cur].terminal {
		t.nodes[cur].terminal = true
		t.size++
	}
}

// child returns the index of the child of node n reached by r, or -1.
func (t *Trie) child(n int32, r rune) int32 {
	edges := t.nodes[n].edges
	i := sort.Search(len(edges), func(i int) bool { return edges[i].label >= r })
	if i < len(edges) && edges[i].label == r {
		return edges[i].node
	}
	return -1
}

// Len returns the number of distinct terms in the trie.
func (t *Trie) Len() int { return t.size }

// NodeCount returns the number of allocated arena nodes, root included.
func (t *Trie) NodeCount() int { return len(t.nodes) }
