// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package relevance

import (
	"testing"

	"github.com/hashwire/minefeed/internal/article"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	m := NewMatcher("bitcoin mining")

	cases := map[string]struct {
		article article.Article
		want    bool
	}{
		"exact query in title": {
			article: article.Article{Title: "Bitcoin Mining difficulty hits new high"},
			want:    true,
		},
		"exact query in body": {
			article: article.Article{Title: "Energy markets", Body: "The growth of bitcoin mining in Texas..."},
			want:    true,
		},
		"exact query in concepts": {
			article: article.Article{Title: "Industry report", Concepts: []string{"Bitcoin mining"}},
			want:    true,
		},
		"query split across fields does not match alone": {
			article: article.Article{Title: "Gold surges", Body: "Commodity markets rally."},
			want:    false,
		},
		"signal pair across fields": {
			article: article.Article{Title: "BTC rally continues", Body: "Hashrate reached an all-time high."},
			want:    true,
		},
		"signal pair in concepts": {
			article: article.Article{Title: "Quarterly results", Concepts: []string{"Bitcoin", "ASIC"}},
			want:    true,
		},
		"topic signal without activity signal": {
			article: article.Article{Title: "Bitcoin price jumps past $100k"},
			want:    false,
		},
		"activity signal without topic signal": {
			article: article.Article{Title: "Coal mining jobs decline"},
			want:    false,
		},
		"case insensitive": {
			article: article.Article{Title: "BITCOIN MINERS EXPAND"},
			want:    true,
		},
		"substring containment, no word boundaries": {
			// "rig" inside "rigging" still counts: pure substring match.
			article: article.Article{Title: "btc", Body: "rigging the market"},
			want:    true,
		},
		"empty article": {
			article: article.Article{},
			want:    false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := m.Match(tc.article); got != tc.want {
				t.Fatalf("Match(%+v) = %v, want %v", tc.article, got, tc.want)
			}
		})
	}
}

func TestMatchEmptyQueryStillUsesSignals(t *testing.T) {
	t.Parallel()

	m := NewMatcher("")
	if !m.Match(article.Article{Title: "bitcoin miners expand"}) {
		t.Fatal("signal pair should match with an empty query")
	}
	if m.Match(article.Article{Title: "anything else"}) {
		t.Fatal("empty query must not match everything")
	}
}
