// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package format builds tweet texts for articles.
package format

import (
	"strings"
)

const (
	// MaxTweetLength is the platform post length limit.
	MaxTweetLength = 280

	// summaryLimit caps the article excerpt appended after the title.
	summaryLimit = 160
)

// Tweet builds the post text for an article: title, an optional summary and
// the article URL. The URL is always preserved verbatim; when the combined
// text would exceed [MaxTweetLength], the title and summary are truncated
// first, marked with an ellipsis. A URL that alone exceeds the limit is
// still kept whole, so such posts run over [MaxTweetLength] and posting is
// left to the platform's link shortening. Output is deterministic for
// identical input.
//
// summary overrides the article body excerpt; pass "" to derive the excerpt
// from body.
func Tweet(title, body, url, summary string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled article"
	}

	if summary == "" {
		summary = body
	}
	summary = strings.Join(strings.Fields(summary), " ")
	if summary != "" {
		summary = strings.TrimRight(truncateRunes(summary, summaryLimit), " ")
	}

	text := title
	if summary != "" {
		text = title + " — " + summary
	}

	candidate := text
	if url != "" {
		candidate = strings.TrimSpace(text + " " + url)
	}
	if runeLen(candidate) <= MaxTweetLength {
		return candidate
	}

	available := MaxTweetLength
	if url != "" {
		available = MaxTweetLength - runeLen(url) - 1
	}
	truncated := strings.TrimRight(truncateRunes(text, max(0, available-1)), " ")
	if strings.HasSuffix(truncated, ".") {
		truncated = strings.TrimSuffix(truncated, ".") + "…"
	} else {
		truncated += "…"
	}

	if url != "" {
		return strings.TrimSpace(truncated + " " + url)
	}
	return truncated
}

func runeLen(s string) int { return len([]rune(s)) }

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
