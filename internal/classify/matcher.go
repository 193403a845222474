// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package classify

import "strings"

// keywordMatcher is an Aho-Corasick automaton over every keyword family.
// One scan of the query finds all family hits in O(n + m + z) instead of
// one strings.Contains pass per keyword.
type keywordMatcher struct {
	root     *acNode
	patterns []keywordPattern
}

type keywordPattern struct {
	text   string
	family string
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// newKeywordMatcher builds the automaton from family -> keywords. Patterns
// are matched case-insensitively as substrings, so "show" hits inside
// "showing" just as strings.Contains would.
func newKeywordMatcher(families map[string][]string) *keywordMatcher {
	m := &keywordMatcher{root: newACNode()}
	for family, keywords := range families {
		for _, k := range keywords {
			if k == "" {
				continue
			}
			m.patterns = append(m.patterns, keywordPattern{
				text:   strings.ToLower(k),
				family: family,
			})
		}
	}
	for i, p := range m.patterns {
		m.insert(i, p.text)
	}
	m.buildFailureLinks()
	return m
}

func (m *keywordMatcher) insert(index int, text string) {
	node := m.root
	for _, ch := range text {
		if node.children[ch] == nil {
			node.children[ch] = newACNode()
		}
		node = node.children[ch]
	}
	node.output = append(node.output, index)
}

// buildFailureLinks wires each node to its longest proper suffix via BFS.
func (m *keywordMatcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// familyCounts scans the lowercased text once and returns, per family, the
// number of DISTINCT keywords present. Repeated occurrences of the same
// keyword count once, matching one point per family member.
func (m *keywordMatcher) familyCounts(lower string) map[string]int {
	seen := make(map[int]bool)
	node := m.root

	for _, ch := range lower {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = m.root
			continue
		}
		node = node.children[ch]
		for _, idx := range node.output {
			seen[idx] = true
		}
	}

	counts := make(map[string]int)
	for idx := range seen {
		counts[m.patterns[idx].family]++
	}
	return counts
}
