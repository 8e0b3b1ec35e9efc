// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"sort"
	"strings"
	"sync"
)

// trieNode represents a node in the TitleTrie.
type trieNode struct {
	children map[rune]*trieNode
	// positions of every title ending at this node, in insertion order
	positions []int
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// TitleTrie is a case-insensitive prefix tree mapping titles to the
// positions (row numbers) they were inserted with.
//
// Lookups return positions in ascending order, so a trie built by inserting
// rows in order answers "first match" questions without a scan:
//   - Exact: every position whose lowercased title equals the query
//   - Prefix: every position whose lowercased title starts with the query
type TitleTrie struct {
	mu   sync.RWMutex
	root *trieNode
	size int
}

// NewTitleTrie creates an empty TitleTrie.
func NewTitleTrie() *TitleTrie {
	return &TitleTrie{root: newTrieNode()}
}

// Insert records title at position pos. Empty titles are ignored.
func (t *TitleTrie) Insert(title string, pos int) {
	if title == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range strings.ToLower(title) {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}
	node.positions = append(node.positions, pos)
	t.size++
}

// Exact returns the positions of titles equal to query, ignoring case.
func (t *TitleTrie) Exact(query string) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(strings.ToLower(query))
	if node == nil || len(node.positions) == 0 {
		return nil
	}
	out := append([]int(nil), node.positions...)
	sort.Ints(out)
	return out
}

// Prefix returns the positions of titles starting with query, ignoring case.
// An empty query matches every title.
func (t *TitleTrie) Prefix(query string) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(strings.ToLower(query))
	if node == nil {
		return nil
	}

	var out []int
	collectPositions(node, &out)
	sort.Ints(out)
	return out
}

// First returns the lowest position whose title equals query, falling back
// to the lowest position whose title starts with query.
func (t *TitleTrie) First(query string) (int, bool) {
	if exact := t.Exact(query); len(exact) > 0 {
		return exact[0], true
	}
	if prefix := t.Prefix(query); len(prefix) > 0 {
		return prefix[0], true
	}
	return 0, false
}

// Size returns the number of inserted titles.
func (t *TitleTrie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

func (t *TitleTrie) find(key string) *trieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collectPositions(node *trieNode, out *[]int) {
	*out = append(*out, node.positions...)
	for _, child := range node.children {
		collectPositions(child, out)
	}
}
