// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package relevance

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hashwire/minefeed/internal/article"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Rules are optional user-defined article filters loaded from a Starlark
// file. The file may define two functions:
//
//	block(article) — return True to drop the article;
//	keep(article)  — return False to drop the article.
//
// Both receive a struct with title, body, url, concepts, lang and category
// fields. Rules run after the built-in relevance predicate. A rule that
// fails to evaluate keeps the article and logs a warning.
type Rules struct {
	keep  *starlark.Function
	block *starlark.Function
	slog  *slog.Logger
}

// LoadRules parses the Starlark rules file at path.
func LoadRules(path string, l *slog.Logger) (*Rules, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRules(path, string(src), l)
}

// ParseRules parses Starlark rules from src. name is used in diagnostics.
func ParseRules(name, src string, l *slog.Logger) (*Rules, error) {
	if l == nil {
		l = slog.Default()
	}
	globals, err := starlark.ExecFile(
		&starlark.Thread{
			Print: func(_ *starlark.Thread, msg string) { l.Info(msg) },
		},
		name,
		src,
		nil,
	)
	if err != nil {
		return nil, err
	}

	r := &Rules{slog: l}
	if v, ok := globals["keep"]; ok {
		fn, ok := v.(*starlark.Function)
		if !ok {
			return nil, fmt.Errorf("%s: keep must be a function, got %s", name, v.Type())
		}
		r.keep = fn
	}
	if v, ok := globals["block"]; ok {
		fn, ok := v.(*starlark.Function)
		if !ok {
			return nil, fmt.Errorf("%s: block must be a function, got %s", name, v.Type())
		}
		r.block = fn
	}
	return r, nil
}

// Allow reports whether a passes the user-defined rules. A nil Rules allows
// everything.
func (r *Rules) Allow(a article.Article) bool {
	if r == nil {
		return true
	}
	if r.block != nil {
		if blocked, ok := r.apply(r.block, a); ok && blocked {
			return false
		}
	}
	if r.keep != nil {
		if kept, ok := r.apply(r.keep, a); ok && !kept {
			return false
		}
	}
	return true
}

// apply evaluates rule against a. ok is false when the rule failed to
// evaluate or returned a non-boolean; such articles are kept.
func (r *Rules) apply(rule *starlark.Function, a article.Article) (result, ok bool) {
	concepts := make([]starlark.Value, 0, len(a.Concepts))
	for _, c := range a.Concepts {
		concepts = append(concepts, starlark.String(c))
	}
	val, err := starlark.Call(
		&starlark.Thread{
			Print: func(_ *starlark.Thread, msg string) { r.slog.Info(msg) },
		},
		rule,
		starlark.Tuple{starlarkstruct.FromStringDict(
			starlarkstruct.Default,
			starlark.StringDict{
				"title":    starlark.String(a.Title),
				"body":     starlark.String(a.Body),
				"url":      starlark.String(a.URL),
				"concepts": starlark.NewList(concepts),
				"lang":     starlark.String(a.Language),
				"category": starlark.String(string(a.Category)),
			},
		)},
		nil,
	)
	if err != nil {
		r.slog.Warn("applying rule for article", "article", a.URI, "error", err)
		return false, false
	}
	ret, isBool := val.(starlark.Bool)
	if !isBool {
		r.slog.Warn("rule returned non-boolean value", "article", a.URI, "type", val.Type())
		return false, false
	}
	return bool(ret), true
}
