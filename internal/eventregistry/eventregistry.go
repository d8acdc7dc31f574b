// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package eventregistry implements the article source backed by the Event
// Registry recent-activity API.
//
// Fetching is a two-step process: the minute-stream endpoint lists recent
// activity per category and carries the pagination checkpoint, and a detail
// query enriches the listed articles with full bodies and concept labels.
// Enrichment failures degrade to the unenriched listing.
package eventregistry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashwire/minefeed/internal/article"
	"github.com/hashwire/minefeed/internal/request"
)

const defaultBaseURL = "https://eventregistry.org"

// bodyLen caps article body length requested from the API. The formatter
// only ever uses a short excerpt.
const bodyLen = 400

// Config configures a Client.
type Config struct {
	// APIKey is the Event Registry API key. Required.
	APIKey string
	// Query narrows the activity stream to articles mentioning the keyword.
	Query string
	// Lang optionally restricts results to a language code, e.g. "eng".
	Lang string
	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
	// Logger is an optional logger.
	Logger *slog.Logger
}

// Client fetches recent articles from Event Registry.
type Client struct {
	apiKey   string
	query    string
	lang     string
	baseURL  string
	httpc    *http.Client
	slog     *slog.Logger
	scrubber *strings.Replacer
}

// New returns a Client configured per cfg.
func New(cfg Config) *Client {
	c := &Client{
		apiKey:  cfg.APIKey,
		query:   cfg.Query,
		lang:    cfg.Lang,
		baseURL: cfg.BaseURL,
		httpc:   cfg.HTTPClient,
		slog:    cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.slog == nil {
		c.slog = slog.Default()
	}
	if c.apiKey != "" {
		c.scrubber = strings.NewReplacer(c.apiKey, "[EXPUNGED]")
	}
	return c
}

// Categories implements the [article.Source] interface.
func (c *Client) Categories() []article.Category { return article.Categories }

// updatesAfterParams maps categories to the minute-stream checkpoint
// parameter names.
var updatesAfterParams = map[article.Category]string{
	article.CategoryNews: "recentActivityArticlesNewsUpdatesAfterUri",
	article.CategoryBlog: "recentActivityArticlesBlogsUpdatesAfterUri",
	article.CategoryPR:   "recentActivityArticlesPrUpdatesAfterUri",
}

// updatesAfterFields maps categories to the response fields carrying the new
// checkpoint value.
var updatesAfterFields = map[article.Category]string{
	article.CategoryNews: "newsUpdatesAfterUri",
	article.CategoryBlog: "blogsUpdatesAfterUri",
	article.CategoryPR:   "prUpdatesAfterUri",
}

type apiConcept struct {
	Label map[string]string `json:"label"`
}

type apiArticle struct {
	URI      string       `json:"uri"`
	Title    string       `json:"title"`
	Body     string       `json:"body"`
	URL      string       `json:"url"`
	Lang     string       `json:"lang"`
	Concepts []apiConcept `json:"concepts"`
}

type activityResponse struct {
	RecentActivityArticles struct {
		Activity             []apiArticle `json:"activity"`
		NewsUpdatesAfterURI  string       `json:"newsUpdatesAfterUri"`
		BlogsUpdatesAfterURI string       `json:"blogsUpdatesAfterUri"`
		PrUpdatesAfterURI    string       `json:"prUpdatesAfterUri"`
	} `json:"recentActivityArticles"`
}

type detailResponse struct {
	Articles struct {
		Results []apiArticle `json:"results"`
	} `json:"articles"`
}

// Fetch implements the [article.Source] interface. It lists activity of the
// given category published after afterURI (oldest first) and returns the
// newest fetched identifier alongside.
func (c *Client) Fetch(ctx context.Context, cat article.Category, afterURI string) ([]article.Article, string, error) {
	param, ok := updatesAfterParams[cat]
	if !ok {
		return nil, "", fmt.Errorf("unknown category %q", cat)
	}

	body := map[string]any{
		"apiKey":         c.apiKey,
		"articleBodyLen": bodyLen,
	}
	body["recentActivityArticlesArticleTypes"] = []string{string(cat)}
	body["includeArticleConcepts"] = true
	if c.query != "" {
		body["recentActivityArticlesKeyword"] = c.query
	}
	if c.lang != "" {
		body["articleLang"] = c.lang
	}
	if afterURI != "" {
		body[param] = afterURI
	}

	resp, err := request.Make[activityResponse](ctx, request.Params{
		Method:     http.MethodPost,
		URL:        c.baseURL + "/api/v1/minuteStreamArticles",
		Body:       body,
		HTTPClient: c.httpc,
		Scrubber:   c.scrubber,
	})
	if err != nil {
		return nil, "", fmt.Errorf("fetching recent %s activity: %w", cat, err)
	}

	activity := resp.RecentActivityArticles.Activity
	latest := c.latestURI(resp, cat, activity)
	if len(activity) == 0 {
		return nil, latest, nil
	}

	enriched := c.enrich(ctx, activity)

	items := make([]article.Article, 0, len(enriched))
	for _, a := range enriched {
		if a.URI == "" {
			c.slog.Debug("skipping activity item without URI", "category", cat)
			continue
		}
		items = append(items, toArticle(a, cat))
	}
	return items, latest, nil
}

// latestURI picks the checkpoint to advance to: the response's updatesAfter
// value when present, otherwise the last (newest) listed identifier.
func (c *Client) latestURI(resp activityResponse, cat article.Category, activity []apiArticle) string {
	var fromResp string
	switch updatesAfterFields[cat] {
	case "newsUpdatesAfterUri":
		fromResp = resp.RecentActivityArticles.NewsUpdatesAfterURI
	case "blogsUpdatesAfterUri":
		fromResp = resp.RecentActivityArticles.BlogsUpdatesAfterURI
	case "prUpdatesAfterUri":
		fromResp = resp.RecentActivityArticles.PrUpdatesAfterURI
	}
	if fromResp != "" {
		return fromResp
	}
	if len(activity) > 0 {
		return activity[len(activity)-1].URI
	}
	return ""
}

// enrich fetches full details for the listed articles and merges them over
// the activity listing. Any failure keeps the unenriched listing.
func (c *Client) enrich(ctx context.Context, activity []apiArticle) []apiArticle {
	uris := make([]string, 0, len(activity))
	for _, a := range activity {
		if a.URI != "" {
			uris = append(uris, a.URI)
		}
	}
	if len(uris) == 0 {
		return activity
	}

	resp, err := request.Make[detailResponse](ctx, request.Params{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/v1/article/getArticles",
		Body: map[string]any{
			"apiKey":                 c.apiKey,
			"articleUri":             uris,
			"resultType":             "articles",
			"articleBodyLen":         bodyLen,
			"includeArticleConcepts": true,
		},
		HTTPClient: c.httpc,
		Scrubber:   c.scrubber,
	})
	if err != nil {
		c.slog.Warn("failed to enrich articles", "error", err)
		return activity
	}

	detailed := make(map[string]apiArticle, len(resp.Articles.Results))
	for _, a := range resp.Articles.Results {
		if a.URI != "" {
			detailed[a.URI] = a
		}
	}

	merged := make([]apiArticle, 0, len(activity))
	for _, a := range activity {
		if d, ok := detailed[a.URI]; ok {
			merged = append(merged, mergeArticle(a, d))
		} else {
			merged = append(merged, a)
		}
	}
	return merged
}

// mergeArticle overlays detail fields over the activity listing, keeping
// listing values where the detail response left a field empty.
func mergeArticle(listing, detail apiArticle) apiArticle {
	out := listing
	if detail.Title != "" {
		out.Title = detail.Title
	}
	if detail.Body != "" {
		out.Body = detail.Body
	}
	if detail.URL != "" {
		out.URL = detail.URL
	}
	if detail.Lang != "" {
		out.Lang = detail.Lang
	}
	if len(detail.Concepts) > 0 {
		out.Concepts = detail.Concepts
	}
	return out
}

func toArticle(a apiArticle, cat article.Category) article.Article {
	concepts := make([]string, 0, len(a.Concepts))
	for _, c := range a.Concepts {
		if label := c.Label["eng"]; label != "" {
			concepts = append(concepts, label)
		}
	}
	return article.Article{
		URI:      a.URI,
		Title:    a.Title,
		Body:     a.Body,
		URL:      a.URL,
		Concepts: concepts,
		Language: a.Lang,
		Category: cat,
	}
}
