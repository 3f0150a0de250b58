package core

import (
	"sort"
	"strings"
)

// WordTrie stores the words played so far and answers exact and prefix
// queries. Words are upper-cased on the way in. It only ever grows.
type WordTrie struct {
	root  trieNode
	count int
}

type trieNode struct {
	word     bool
	children map[rune]*trieNode
}

// NewWordTrie creates an empty trie.
func NewWordTrie() *WordTrie {
	return &WordTrie{}
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Add inserts word. Adding a word twice has no effect.
func (t *WordTrie) Add(word string) {
	word = normalize(word)
	if word == "" {
		return
	}

	n := &t.root
	for _, r := range word {
		if n.children == nil {
			n.children = make(map[rune]*trieNode)
		}
		next, ok := n.children[r]
		if !ok {
			next = &trieNode{}
			n.children[r] = next
		}
		n = next
	}
	if !n.word {
		n.word = true
		t.count++
	}
}

// find walks the trie along word and returns the final node, or nil.
func (t *WordTrie) find(word string) *trieNode {
	n := &t.root
	for _, r := range word {
		next, ok := n.children[r]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

// Contains reports whether word was added.
func (t *WordTrie) Contains(word string) bool {
	word = normalize(word)
	if word == "" {
		return false
	}
	n := t.find(word)
	return n != nil && n.word
}

// ContainsPrefix reports whether word is a prefix of some stored word.
// A stored word counts as its own prefix. Only this direction is checked:
// a candidate that extends a stored word is allowed.
func (t *WordTrie) ContainsPrefix(word string) bool {
	word = normalize(word)
	if word == "" {
		return false
	}
	return t.find(word) != nil
}

// Len returns the number of distinct stored words.
func (t *WordTrie) Len() int {
	return t.count
}

// Words returns all stored words in lexical order.
func (t *WordTrie) Words() []string {
	words := make([]string, 0, t.count)
	var walk func(n *trieNode, prefix []rune)
	walk = func(n *trieNode, prefix []rune) {
		if n.word {
			words = append(words, string(prefix))
		}
		for r, child := range n.children {
			walk(child, append(prefix, r))
		}
	}
	walk(&t.root, nil)
	sort.Strings(words)
	return words
}
