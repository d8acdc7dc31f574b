// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package rss

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashwire/minefeed/internal/article"
	"github.com/hashwire/minefeed/internal/testutil"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Mining Weekly</title>
    <item>
      <title>Newest item</title>
      <link>https://example.com/2</link>
      <guid>item-2</guid>
      <description>Hashrate climbs again.</description>
    </item>
    <item>
      <title>Older item</title>
      <link>https://example.com/1</link>
      <guid>item-1</guid>
      <description>Difficulty adjustment lands.</description>
    </item>
  </channel>
</rss>`

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFetchReturnsOldestFirst(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer ts.Close()

	s := New(Config{Feeds: []string{ts.URL}, Logger: discardLogger()})
	items, latest, err := s.Fetch(t.Context(), article.CategoryNews, "")
	if err != nil {
		t.Fatal(err)
	}

	// RSS carries no pagination checkpoint.
	testutil.AssertEqual(t, latest, "")
	testutil.AssertEqual(t, items, []article.Article{
		{URI: "item-1", Title: "Older item", Body: "Difficulty adjustment lands.", URL: "https://example.com/1", Category: article.CategoryNews},
		{URI: "item-2", Title: "Newest item", Body: "Hashrate climbs again.", URL: "https://example.com/2", Category: article.CategoryNews},
	})
}

func TestFetchSkipsFailingFeed(t *testing.T) {
	t.Parallel()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	s := New(Config{Feeds: []string{bad.URL, good.URL}, Logger: discardLogger()})
	items, _, err := s.Fetch(t.Context(), article.CategoryNews, "")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(items), 2)
}

func TestFetchAllFeedsFailing(t *testing.T) {
	t.Parallel()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	s := New(Config{Feeds: []string{bad.URL}, Logger: discardLogger()})
	if _, _, err := s.Fetch(t.Context(), article.CategoryNews, ""); err == nil {
		t.Fatal("want error when every feed fails")
	}
}

func TestFetchIgnoresOtherCategories(t *testing.T) {
	t.Parallel()

	s := New(Config{Feeds: []string{"https://example.com/feed.xml"}, Logger: discardLogger()})
	items, latest, err := s.Fetch(t.Context(), article.CategoryBlog, "")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(items), 0)
	testutil.AssertEqual(t, latest, "")
}
