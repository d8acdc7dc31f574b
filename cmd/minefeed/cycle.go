// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hashwire/minefeed/internal/article"
	"github.com/hashwire/minefeed/internal/format"
	"github.com/hashwire/minefeed/internal/state"
)

// cycle runs one poll cycle: fetch, filter, dedup, cap, format, post,
// checkpoint-advance, persist.
//
// A category that fails to fetch is skipped; everything fetched from the
// other categories is still processed, and state is persisted
// unconditionally at the end. A posting failure marks the article as seen
// anyway, so every article gets at most one posting attempt.
func (b *bot) cycle(ctx context.Context) error {
	start := b.now()

	var candidates []article.Article
	for _, src := range b.sources {
		for _, cat := range src.Categories() {
			items, latest, err := src.Fetch(ctx, cat, b.state.For(cat))
			if err != nil {
				b.slog.Error("fetching category failed", "category", cat, "error", err)
				continue
			}
			// The cursor moves to the newest fetched identifier no
			// matter what gets posted below.
			b.state.AdvanceCheckpoint(cat, latest)

			for _, a := range items {
				if b.state.HasPosted(a.URI) {
					b.slog.Debug("already posted", "uri", a.URI)
					continue
				}
				if !b.matcher.Match(a) {
					b.slog.Debug("not relevant", "uri", a.URI, "title", a.Title)
					continue
				}
				if !b.rules.Allow(a) {
					b.slog.Debug("dropped by rules", "uri", a.URI, "title", a.Title)
					continue
				}
				candidates = append(candidates, a)
			}
		}
	}

	if !b.state.BootstrapCompleted && b.bootstrapCount > 0 && len(candidates) > b.bootstrapCount {
		b.slog.Info("bootstrap cap applied", "cap", b.bootstrapCount, "candidates", len(candidates))
		candidates = candidates[:b.bootstrapCount]
	}

	var posted int
	for _, a := range candidates {
		b.post(ctx, a)
		posted++
	}

	b.state.BootstrapCompleted = true
	if err := state.Save(b.statePath, b.state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	b.slog.Info("cycle finished",
		"posted", posted,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// post formats and publishes a single article, then records it as seen. In
// dry-run mode the publish step is skipped but the article is recorded all
// the same.
func (b *bot) post(ctx context.Context, a article.Article) {
	var summary string
	if b.summarizer != nil {
		s, err := b.summarizer.Summarize(ctx, a)
		if err != nil {
			b.slog.Warn("summarizer failed, falling back to excerpt", "uri", a.URI, "error", err)
		} else {
			summary = s
		}
	}
	text := format.Tweet(a.Title, a.Body, a.URL, summary)

	if b.dry {
		b.slog.Info("dry run, would post", "uri", a.URI, "text", text)
	} else if err := b.poster.Post(ctx, text); err != nil {
		// Still marked as seen below: one posting attempt per article.
		b.slog.Error("posting failed", "uri", a.URI, "error", err)
	} else {
		b.slog.Info("posted", "uri", a.URI, "title", a.Title)
	}

	b.state.RecordPosted(a.URI)
}
