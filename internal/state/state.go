// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package state persists poll checkpoints, posted-article history and the
// bootstrap flag between runs.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/hashwire/minefeed/internal/article"
	"github.com/hashwire/minefeed/internal/atomicio"
)

// PostedHistoryLimit bounds the posted-article history. The oldest entries
// are evicted first.
const PostedHistoryLimit = 250

// Checkpoints are the per-category pagination cursors of the Event Registry
// recent-activity API. Each is either empty or the identifier of the last
// fetched article of that category.
type Checkpoints struct {
	AfterNewsURI string `json:"updatesAfterNewsUri,omitempty"`
	AfterBlogURI string `json:"updatesAfterBlogUri,omitempty"`
	AfterPrURI   string `json:"updatesAfterPrUri,omitempty"`
}

// For returns the checkpoint of the given category.
func (c *Checkpoints) For(cat article.Category) string {
	switch cat {
	case article.CategoryNews:
		return c.AfterNewsURI
	case article.CategoryBlog:
		return c.AfterBlogURI
	case article.CategoryPR:
		return c.AfterPrURI
	}
	return ""
}

func (c *Checkpoints) set(cat article.Category, uri string) {
	switch cat {
	case article.CategoryNews:
		c.AfterNewsURI = uri
	case article.CategoryBlog:
		c.AfterBlogURI = uri
	case article.CategoryPR:
		c.AfterPrURI = uri
	}
}

// State is the persisted bot state. It is owned exclusively by the currently
// running poll cycle and mutated only through its methods.
type State struct {
	Checkpoints
	PostedURIs         []string `json:"postedUris"`
	BootstrapCompleted bool     `json:"bootstrapCompleted"`
}

// Default returns a fresh state: no checkpoints, empty history, bootstrap
// not completed.
func Default() *State {
	return &State{PostedURIs: []string{}}
}

// HasPosted reports whether uri was already posted.
func (s *State) HasPosted(uri string) bool {
	return slices.Contains(s.PostedURIs, uri)
}

// RecordPosted appends uri to the posted history, evicting the oldest
// entries once the capacity is exceeded.
func (s *State) RecordPosted(uri string) {
	s.PostedURIs = append(s.PostedURIs, uri)
	if len(s.PostedURIs) > PostedHistoryLimit {
		s.PostedURIs = s.PostedURIs[len(s.PostedURIs)-PostedHistoryLimit:]
	}
}

// AdvanceCheckpoint overwrites the category cursor with uri. Identifiers are
// opaque, so the store doesn't compare them; callers pass the newest
// identifier observed in the current cycle. An empty uri is ignored, which
// keeps cursors from moving backward when a category returned nothing.
func (s *State) AdvanceCheckpoint(cat article.Category, uri string) {
	if uri == "" {
		return
	}
	s.set(cat, uri)
}

// Load reads persisted state from path. A missing file yields the default
// state; malformed content logs a warning and yields the default state
// rather than failing the process.
func Load(path string, l *slog.Logger) *State {
	if l == nil {
		l = slog.Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.Warn("unable to read state file, starting fresh", "path", path, "error", err)
		}
		return Default()
	}

	s := Default()
	if err := json.Unmarshal(b, s); err != nil {
		l.Warn("state file is corrupt, starting fresh", "path", path, "error", err)
		return Default()
	}
	if s.PostedURIs == nil {
		s.PostedURIs = []string{}
	}
	return s
}

// Save writes s to path atomically, so that a crash mid-write cannot leave a
// half-written file readable as valid state. The posted-history bound is
// enforced on every save.
func Save(path string, s *State) error {
	if len(s.PostedURIs) > PostedHistoryLimit {
		s.PostedURIs = s.PostedURIs[len(s.PostedURIs)-PostedHistoryLimit:]
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return atomicio.WriteFile(path, b, 0o644)
}
