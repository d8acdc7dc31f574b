// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package format

import (
	"flag"
	"strings"
	"testing"

	"github.com/hashwire/minefeed/internal/testutil"
)

var update = flag.Bool("update", false, "update golden files")

const testURL = "https://example.com/articles/7391524"

func TestTweetGolden(t *testing.T) {
	testutil.RunGolden(t, "testdata/*.txtar", func(t *testing.T, match string) []byte {
		ar := testutil.ParseTxtar(t, match)
		field := func(name string) string {
			return strings.TrimSpace(string(ar[name]))
		}
		tweet := Tweet(field("title"), field("body"), field("url"), field("summary"))
		return []byte(tweet + "\n")
	}, *update)
}

func TestTweetShortArticle(t *testing.T) {
	t.Parallel()

	got := Tweet("Hashrate hits new high", "The network hashrate reached 750 EH/s.", testURL, "")
	want := "Hashrate hits new high — The network hashrate reached 750 EH/s. " + testURL
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTweetNeverExceedsLimit(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		title, body, url string
	}{
		"long title":          {strings.Repeat("mining ", 80), "", testURL},
		"long body":           {"Title", strings.Repeat("hashrate difficulty asic ", 40), testURL},
		"long title and body": {strings.Repeat("a", 300), strings.Repeat("b", 300), testURL},
		"no url":              {strings.Repeat("a", 300), strings.Repeat("b", 300), ""},
		"unicode title":       {strings.Repeat("майнинг ", 60), "", testURL},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Tweet(tc.title, tc.body, tc.url, "")
			if n := len([]rune(got)); n > MaxTweetLength {
				t.Fatalf("tweet is %d runes long: %q", n, got)
			}
			if tc.url != "" && !strings.Contains(got, tc.url) {
				t.Fatalf("URL missing from tweet: %q", got)
			}
		})
	}
}

func TestTweetURLPreservedVerbatim(t *testing.T) {
	t.Parallel()

	got := Tweet(strings.Repeat("x", 400), strings.Repeat("y", 400), testURL, "")
	if !strings.HasSuffix(got, " "+testURL) {
		t.Fatalf("tweet does not end with the URL: %q", got)
	}
	if !strings.Contains(got, "…") {
		t.Fatalf("truncated tweet misses ellipsis: %q", got)
	}
}

func TestTweetOverlongURLKeptWhole(t *testing.T) {
	t.Parallel()

	url := "https://example.com/" + strings.Repeat("p", 300)
	got := Tweet("Title", "body", url, "")
	if !strings.Contains(got, url) {
		t.Fatalf("overlong URL was truncated: %q", got)
	}
	// The URL alone is over the limit, so the post is too.
	if n := len([]rune(got)); n <= MaxTweetLength {
		t.Fatalf("tweet is %d runes long, expected it to exceed %d", n, MaxTweetLength)
	}
}

func TestTweetCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	got := Tweet("Title", "spread\n\nacross \t lines", testURL, "")
	if !strings.Contains(got, "spread across lines") {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
}

func TestTweetUntitledFallback(t *testing.T) {
	t.Parallel()

	got := Tweet("", "", testURL, "")
	if !strings.HasPrefix(got, "Untitled article") {
		t.Fatalf("missing title fallback: %q", got)
	}
}

func TestTweetSummaryOverride(t *testing.T) {
	t.Parallel()

	got := Tweet("Title", "the original body", testURL, "a hand-written summary")
	if !strings.Contains(got, "a hand-written summary") {
		t.Fatalf("summary override ignored: %q", got)
	}
	if strings.Contains(got, "original body") {
		t.Fatalf("body used despite summary override: %q", got)
	}
}

func TestTweetDeterministic(t *testing.T) {
	t.Parallel()

	a := Tweet("Title", strings.Repeat("body ", 100), testURL, "")
	b := Tweet("Title", strings.Repeat("body ", 100), testURL, "")
	if a != b {
		t.Fatalf("formatter is not deterministic: %q vs %q", a, b)
	}
}
