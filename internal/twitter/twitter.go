// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package twitter implements posting over the X API v2.
package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashwire/minefeed/internal/request"
)

const defaultBaseURL = "https://api.twitter.com"

// Config configures a Client.
type Config struct {
	// Token is the OAuth 2.0 bearer token used to authorize requests.
	Token string
	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
	// Logger is an optional logger.
	Logger *slog.Logger
}

// Client posts tweets.
type Client struct {
	token    string
	baseURL  string
	httpc    *http.Client
	slog     *slog.Logger
	scrubber *strings.Replacer
}

// New returns a Client configured per cfg.
func New(cfg Config) *Client {
	c := &Client{
		token:   cfg.Token,
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
	if c.token != "" {
		c.scrubber = strings.NewReplacer(c.token, "[EXPUNGED]")
	}
	return c
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Post publishes text as a tweet.
func (c *Client) Post(ctx context.Context, text string) error {
	resp, err := request.Make[tweetResponse](ctx, request.Params{
		Method: http.MethodPost,
		URL:    c.baseURL + "/2/tweets",
		Body:   map[string]string{"text": text},
		Headers: map[string]string{
			"Authorization": "Bearer " + c.token,
		},
		WantStatusCode: http.StatusCreated,
		HTTPClient:     c.httpc,
		Scrubber:       c.scrubber,
	})
	if err != nil {
		return fmt.Errorf("posting tweet: %w", err)
	}
	c.slog.Debug("posted tweet", "id", resp.Data.ID)
	return nil
}
