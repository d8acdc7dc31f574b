// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/test" {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "missing content type", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "success"}`))
	}))
	defer ts.Close()

	type response struct {
		Message string `json:"message"`
	}

	resp, err := Make[response](t.Context(), Params{
		Method: http.MethodPost,
		URL:    ts.URL + "/test",
		Body:   map[string]string{"key": "value"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Message != "success" {
		t.Fatalf("want message %q, got %q", "success", resp.Message)
	}
}

func TestMakeStatusError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "slow down"}`))
	}))
	defer ts.Close()

	_, err := Make[IgnoreResponse](t.Context(), Params{
		Method: http.MethodGet,
		URL:    ts.URL,
	})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("want status code 429, got %d", statusErr.StatusCode)
	}
	if !strings.Contains(string(statusErr.Body), "slow down") {
		t.Fatalf("unexpected body %q", statusErr.Body)
	}
}

func TestMakeScrubsErrors(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token secret123 is invalid", http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := Make[IgnoreResponse](t.Context(), Params{
		Method:   http.MethodGet,
		URL:      ts.URL,
		Scrubber: strings.NewReplacer("secret123", "[EXPUNGED]"),
	})
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if strings.Contains(err.Error(), "secret123") {
		t.Fatalf("error message leaks secret: %q", err)
	}
	if !strings.Contains(err.Error(), "[EXPUNGED]") {
		t.Fatalf("error message is not scrubbed: %q", err)
	}
}

func TestMakeWantStatusCode(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "1"}`))
	}))
	defer ts.Close()

	b, err := Make[Bytes](t.Context(), Params{
		Method:         http.MethodPost,
		URL:            ts.URL,
		WantStatusCode: http.StatusCreated,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"id"`) {
		t.Fatalf("unexpected body %q", b)
	}
}
