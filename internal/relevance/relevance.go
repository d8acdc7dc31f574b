// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package relevance decides whether an article is about Bitcoin mining.
package relevance

import (
	"strings"

	"github.com/hashwire/minefeed/internal/article"
)

// Topic and activity signal terms for relaxed matching. An article that
// contains at least one term from each set is considered relevant even when
// the exact query phrase is absent.
var (
	topicSignals = []string{"bitcoin", "btc"}

	activitySignals = []string{
		"mining", "miner", "miners", "hashrate", "hash rate",
		"hashpower", "hash power", "difficulty", "asic", "asics",
		"rig", "rigs", "exahash", "terahash", "proof-of-work", "proof of work",
	}
)

// Matcher reports whether articles are relevant to the configured query.
//
// The zero value matches nothing; construct it with a query.
type Matcher struct {
	query string
}

// NewMatcher returns a Matcher for the given query phrase.
func NewMatcher(query string) Matcher {
	return Matcher{query: strings.ToLower(query)}
}

// Match reports whether a is relevant. It holds if either the exact query
// phrase appears as a substring in the article text, or both a topic signal
// and an activity signal appear. Matching is case-insensitive and uses pure
// substring containment, no stemming and no word boundaries.
func (m Matcher) Match(a article.Article) bool {
	text := a.SearchText()

	if m.query != "" && strings.Contains(text, m.query) {
		return true
	}
	return containsAny(text, topicSignals) && containsAny(text, activitySignals)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
