// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package rss implements a supplemental article source backed by RSS/Atom
// feeds.
//
// Feeds have no pagination checkpoints: the source always returns an empty
// latest identifier and the caller relies on posted history for
// deduplication. All feed items are reported under the news category.
package rss

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/hashwire/minefeed/internal/article"
	"github.com/hashwire/minefeed/internal/request"
	"github.com/hashwire/minefeed/internal/syncutil"
	"github.com/hashwire/minefeed/internal/version"

	"github.com/mmcdole/gofeed"
)

// fetchConcurrencyLimit caps how many feeds are fetched at once.
const fetchConcurrencyLimit = 4

// Config configures a Source.
type Config struct {
	// Feeds are the RSS/Atom feed URLs to poll.
	Feeds []string
	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
	// Logger is an optional logger.
	Logger *slog.Logger
}

// Source fetches articles from configured feeds.
type Source struct {
	feeds []string
	fp    *gofeed.Parser
	httpc *http.Client
	slog  *slog.Logger
}

// New returns a Source polling the configured feeds.
func New(cfg Config) *Source {
	s := &Source{
		feeds: cfg.Feeds,
		fp:    gofeed.NewParser(),
		httpc: cfg.HTTPClient,
		slog:  cfg.Logger,
	}
	if s.httpc == nil {
		s.httpc = request.DefaultClient
	}
	if s.slog == nil {
		s.slog = slog.Default()
	}
	return s
}

// Categories implements the [article.Source] interface.
func (s *Source) Categories() []article.Category {
	return []article.Category{article.CategoryNews}
}

// Fetch implements the [article.Source] interface. Feeds are fetched
// concurrently; within a feed, items are returned oldest first. A feed that
// fails to fetch or parse is logged and skipped; Fetch fails only when every
// configured feed failed.
func (s *Source) Fetch(ctx context.Context, cat article.Category, _ string) ([]article.Article, string, error) {
	if cat != article.CategoryNews || len(s.feeds) == 0 {
		return nil, "", nil
	}

	var (
		mu     sync.Mutex
		items  []article.Article
		failed []error
	)
	wg := syncutil.NewLimitedWaitGroup(fetchConcurrencyLimit)
	for _, url := range s.feeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feedItems, err := s.fetchFeed(ctx, url)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.slog.Warn("failed to fetch feed", "feed", url, "error", err)
				failed = append(failed, fmt.Errorf("%s: %w", url, err))
				return
			}
			items = append(items, feedItems...)
		}()
	}
	wg.Wait()
	if len(failed) > 0 && len(failed) == len(s.feeds) {
		return nil, "", errors.Join(failed...)
	}
	return items, "", nil
}

func (s *Source) fetchFeed(ctx context.Context, url string) ([]article.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())

	res, err := s.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("want 200, got %d", res.StatusCode)
	}

	feed, err := s.fp.Parse(res.Body)
	if err != nil {
		return nil, err
	}

	items := make([]article.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" && item.GUID == "" {
			continue
		}
		uri := item.GUID
		if uri == "" {
			uri = item.Link
		}
		items = append(items, article.Article{
			URI:      uri,
			Title:    item.Title,
			Body:     item.Description,
			URL:      item.Link,
			Category: article.CategoryNews,
		})
	}

	// Feeds list newest first; the poll cycle wants oldest first.
	slices.Reverse(items)
	return items, nil
}
