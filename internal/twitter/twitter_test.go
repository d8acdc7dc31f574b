// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package twitter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestPost(t *testing.T) {
	t.Parallel()

	var gotText, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/2/tweets" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotText = body.Text
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": "1", "text": "ok"}}`))
	}))
	defer ts.Close()

	c := New(Config{Token: "token123", BaseURL: ts.URL, Logger: discardLogger()})
	if err := c.Post(t.Context(), "Hashrate hits new high"); err != nil {
		t.Fatal(err)
	}
	if gotText != "Hashrate hits new high" {
		t.Fatalf("unexpected tweet text %q", gotText)
	}
	if gotAuth != "Bearer token123" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestPostError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title": "Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := New(Config{Token: "token123", BaseURL: ts.URL, Logger: discardLogger()})
	if err := c.Post(t.Context(), "text"); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestPostErrorScrubsToken(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token token123", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := New(Config{Token: "token123", BaseURL: ts.URL, Logger: discardLogger()})
	err := c.Post(t.Context(), "text")
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if strings.Contains(err.Error(), "token123") {
		t.Fatalf("error message leaks token: %q", err)
	}
}
