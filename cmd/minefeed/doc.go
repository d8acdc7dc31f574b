// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Minefeed polls news sources for Bitcoin mining coverage and posts new
articles to X.

# Usage

	$ minefeed [flags...]

By default minefeed runs a single poll cycle and exits. Pass -loop to keep
polling at the configured interval.

Each cycle fetches recent articles from Event Registry (and optional RSS
feeds), keeps those matching the relevance predicate, drops everything
already posted, formats the survivors as posts of at most 280 characters and
publishes them. Checkpoints and posted history are persisted after every
cycle, so restarts never repost old articles.

# Environment Variables

The minefeed program relies on the following environment variables:

  - EVENT_REGISTRY_API_KEY: Event Registry API key. NEWSAPI_API_KEY is
    accepted as a fallback name.
  - TWITTER_BEARER_TOKEN: OAuth 2.0 bearer token for the X API.
  - GEMINI_API_KEY: Gemini API key, required only when -gemini-model is set.
  - BOT_QUERY: search phrase, same as -query.
  - BOT_ARTICLE_LANG: article language code, same as -lang.
  - BOT_POLL_INTERVAL: poll interval, same as -interval. Accepts a Go
    duration ("5m") or a number of seconds ("300").
  - BOT_BOOTSTRAP_COUNT: post cap for the first cycle, same as
    -bootstrap-count.
  - BOT_STATE_PATH: state file location, same as -state.
  - BOT_LOG_LEVEL: set to "debug" to enable debug logging, same as -v.

Flags take precedence over environment variables, which take precedence over
the configuration file.

# Configuration File

The -config flag points to an optional YAML file:

	query: bitcoin mining
	lang: eng
	interval: 5m
	state: /var/lib/minefeed/state.json
	feeds:
	  - https://example.com/mining-news.xml

Feed URLs can only be set through the configuration file. Every other key
mirrors a flag.

# Rules

The -rules flag points to an optional Starlark file that refines which
articles get posted. It may define two functions:

	def block(article):
	    return "sponsored" in article.title.lower()

	def keep(article):
	    return article.lang == "eng"

If block returns True, the article is dropped. If keep returns False, the
article is dropped. Both receive a struct with title, body, url, concepts,
lang and category fields. A rule that fails to evaluate keeps the article and
logs a warning.

# State

Minefeed persists its state as a small JSON file (see -state): per-category
fetch checkpoints, a bounded history of posted article identifiers and a
bootstrap flag. The file is written atomically; you won't need to touch it
except to reset the bot.

On the very first cycle the bootstrap cap (-bootstrap-count) limits how many
articles are posted, so a fresh deployment doesn't flood the account. Zero
means no cap.

# Pausing

Create the file named by -pause-file to pause posting; minefeed checks for it
before every cycle and resumes once the file is removed.
*/
package main

import (
	_ "embed"

	"github.com/hashwire/minefeed/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
