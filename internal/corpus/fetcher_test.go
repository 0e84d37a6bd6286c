package corpus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchStoryByID(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v3/stories/111"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "111", "title": "T", "isPaywalled": false,
				"user":  map[string]string{"name": "A"},
				"parts": []map[string]any{{"id": 1, "title": "One", "text_url": map[string]string{"text": srv.URL + "/text/1"}}},
			})
		case r.URL.Path == "/text/1":
			_, _ = w.Write([]byte("<html><body><p>Hello</p><script>junk()</script><p>World</p></body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewWithBaseURL(srv.URL)
	story, err := f.FetchStory(context.Background(), "111")
	if err != nil { t.Fatalf("fetch: %v", err) }
	if story.Title != "T" || len(story.Parts) != 1 { t.Fatalf("story=%+v", story) }
	if story.Parts[0].Text != "Hello\nWorld" { t.Fatalf("text=%q", story.Parts[0].Text) }
	if story.Parts[0].ID != "1" { t.Fatalf("numeric id not normalized: %q", story.Parts[0].ID) }
}

func TestFetchStoryFallsBackToPartID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v3/stories/"):
			w.WriteHeader(http.StatusNotFound)
		case strings.HasPrefix(r.URL.Path, "/v4/parts/222"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"group": map[string]any{"id": "999", "title": "ByPart", "isPaywalled": false},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewWithBaseURL(srv.URL)
	story, err := f.FetchStory(context.Background(), "222")
	if err != nil { t.Fatalf("fetch: %v", err) }
	if story.ID != "999" || story.Title != "ByPart" { t.Fatalf("story=%+v", story) }
}

func TestFetchStoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewWithBaseURL(srv.URL)
	_, err := f.FetchStory(context.Background(), "nope")
	if err == nil { t.Fatalf("expected error") }
	if !IsNotFound(err) { t.Fatalf("expected not-found classification: %v", err) }
}

func TestFetchStoryPaywalledSkipsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "333", "title": "Locked", "isPaywalled": true,
			"parts": []map[string]any{{"id": 1, "text_url": map[string]string{"text": "http://should-not-be-called.test"}}},
		})
	}))
	defer srv.Close()

	f := NewWithBaseURL(srv.URL)
	story, err := f.FetchStory(context.Background(), "333")
	if err != nil { t.Fatalf("fetch: %v", err) }
	if !story.Paywalled { t.Fatalf("expected paywalled") }
	if story.Parts[0].Text != "" { t.Fatalf("text should not be fetched for paywalled story") }
}

func TestHTMLToText(t *testing.T) {
	in := `<html><head><style>p{}</style></head><body>
	<p>First  phrase.   Second  phrase.</p>
	<script>var x = 1;</script>
	<div>  Another line  </div>
	</body></html>`
	got, err := HTMLToText(strings.NewReader(in))
	if err != nil { t.Fatalf("parse: %v", err) }
	if strings.Contains(got, "var x") { t.Fatalf("script leaked: %q", got) }
	if strings.Contains(got, "p{}") { t.Fatalf("style leaked: %q", got) }
	for _, want := range []string{"First", "Second", "Another line"} {
		if !strings.Contains(got, want) { t.Fatalf("missing %q in %q", want, got) }
	}
}

func TestSaveWritesJSONAndText(t *testing.T) {
	d := t.TempDir()
	story := &Story{
		ID: "42", Title: "The Tale", User: Author{Name: "Someone"},
		Parts: []Part{{ID: "1", Title: "Opening", Text: "Once upon a time."}},
	}
	txtPath, err := Save(story, d)
	if err != nil { t.Fatalf("save: %v", err) }
	if filepath.Base(txtPath) != "story_42.txt" { t.Fatalf("path=%s", txtPath) }

	b, err := os.ReadFile(txtPath)
	if err != nil { t.Fatalf("read: %v", err) }
	text := string(b)
	for _, want := range []string{"Title: The Tale", "Author: Someone", "Part 1: Opening", "Once upon a time."} {
		if !strings.Contains(text, want) { t.Fatalf("missing %q", want) }
	}
	if _, err := os.Stat(filepath.Join(d, "story_42.json")); err != nil {
		t.Fatalf("metadata missing: %v", err)
	}
}

func TestSaveRequiresID(t *testing.T) {
	if _, err := Save(&Story{}, t.TempDir()); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestFetcherBoundsRequestTime(t *testing.T) {
	for _, f := range []*Fetcher{New(), NewWithBaseURL("http://example.test")} {
		if f.http.Timeout != requestTimeout {
			t.Fatalf("client timeout=%v, want %v", f.http.Timeout, requestTimeout)
		}
	}
}
