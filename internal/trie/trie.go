package trie

import (
	"sort"
	"strings"
)

// NodeIndex references a node stored in the arena.
type NodeIndex int

// Arena stores all trie nodes in one contiguous slice and references them by
// index instead of pointer. The trie is built once from the ignore
// configuration and then queried for every walked path, so locality on the
// lookup side matters more than insertion cost.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	// children maps a path segment to the index of the child node.
	children map[string]NodeIndex
	// terminal marks the last segment of an inserted path.
	terminal bool
}

// NewArena creates an arena holding only the root node at index 0.
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 64),
	}
	arena.nodes = append(arena.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return arena
}

func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return idx
}

// Insert adds a segment sequence to the trie.
func (a *Arena) Insert(sequence []string) {
	current := NodeIndex(0)

	for _, part := range sequence {
		node := &a.nodes[current]
		childIdx, exists := node.children[part]

		if !exists {
			childIdx = a.newNode()
			node.children[part] = childIdx
		}

		current = childIdx
	}

	a.nodes[current].terminal = true
}

// MatchesPrefix reports whether any inserted sequence is a prefix of the
// given one. An inserted path therefore covers itself and everything below
// it, and never a sibling that merely shares a name prefix.
func (a *Arena) MatchesPrefix(sequence []string) bool {
	current := NodeIndex(0)

	for _, part := range sequence {
		if a.nodes[current].terminal {
			return true
		}
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			return false
		}
		current = childIdx
	}

	return a.nodes[current].terminal
}

// DebugString renders the trie in a compact parenthesized form, with `*`
// marking terminal nodes. Children appear in sorted order.
func (a *Arena) DebugString() string {
	return a.debugStringNode(NodeIndex(0))
}

func (a *Arena) debugStringNode(idx NodeIndex) string {
	node := a.nodes[idx]
	var sb strings.Builder

	if node.terminal {
		sb.WriteString("*")
	}

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("(")
		sb.WriteString(a.debugStringNode(node.children[key]))
		sb.WriteString(")")
	}

	return sb.String()
}

// Trie matches path-segment sequences against a set of inserted prefixes.
type Trie struct {
	arena *Arena
}

// New returns an initialized Trie.
func New() *Trie {
	return &Trie{
		arena: NewArena(),
	}
}

// Insert adds a segment sequence to the trie.
func (t *Trie) Insert(sequence []string) {
	t.arena.Insert(sequence)
}

// MatchesPrefix reports whether any inserted sequence is a prefix of the
// given one.
func (t *Trie) MatchesPrefix(sequence []string) bool {
	return t.arena.MatchesPrefix(sequence)
}

// DebugString returns a string representation of the trie for debugging
// purposes.
func (t *Trie) DebugString() string {
	return t.arena.DebugString()
}
