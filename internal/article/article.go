// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package article defines the article record shared by all sources and the
// source interface itself.
package article

import (
	"context"
	"strings"
)

// Category is the Event Registry activity category an article belongs to.
type Category string

// Known categories.
const (
	CategoryNews Category = "news"
	CategoryBlog Category = "blog"
	CategoryPR   Category = "pr"
)

// Categories lists all known categories in a stable order.
var Categories = []Category{CategoryNews, CategoryBlog, CategoryPR}

// Article is a single fetched article. Immutable once fetched.
type Article struct {
	URI      string   `json:"uri"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	URL      string   `json:"url"`
	Concepts []string `json:"concepts,omitempty"`
	Language string   `json:"lang,omitempty"`
	Category Category `json:"category,omitempty"`
}

// SearchText returns the lowercased concatenation of title, body and concept
// labels, used for relevance matching. Absent fields contribute an empty
// string.
func (a Article) SearchText() string {
	parts := make([]string, 0, 2+len(a.Concepts))
	parts = append(parts, a.Title, a.Body)
	parts = append(parts, a.Concepts...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Source yields candidate articles newer than a given checkpoint.
//
// Fetch returns the articles of the category published after the article
// identified by afterURI, oldest first, together with the newest fetched
// identifier. An empty afterURI requests the most recent window. Sources
// without checkpoint support return an empty latestURI; the caller then
// relies on posted history alone for deduplication.
type Source interface {
	Categories() []Category
	Fetch(ctx context.Context, cat Category, afterURI string) (items []Article, latestURI string, err error)
}
