// Package corpus downloads playground source material from the story API and
// stores it in the data dir as JSON metadata plus plain text, ready for
// indexing.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.wattpad.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// requestTimeout caps each story/part request; every call here is a
	// bounded request-response, never a stream.
	requestTimeout = 30 * time.Second

	storyFields ="id,title,description,url,cover,isPaywalled,user(name,username,avatar),lastPublishedPart,parts(id,title,text_url),tags"
	partFields  = "text_url,group(id,title,description,isPaywalled,url,cover,user(name,username,avatar),lastPublishedPart,parts(id,title,text_url),tags)"
)

// Part is one chapter of a story.
type Part struct {
	ID      FlexID  `json:"id"`
	Title   string  `json:"title"`
	TextURL TextURL `json:"text_url"`
	// Text is filled by FetchStory when part text is requested.
	Text string `json:"text,omitempty"`
}

// TextURL wraps the nested text_url object of the API.
type TextURL struct {
	Text string `json:"text"`
}

// Author is the story's user object.
type Author struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Story is the book-level metadata returned by the API.
type Story struct {
	ID          FlexID   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Paywalled   bool     `json:"isPaywalled"`
	User        Author   `json:"user"`
	Parts       []Part   `json:"parts"`
	Tags        []string `json:"tags"`
}

// FlexID tolerates the API returning ids as either strings or numbers.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", string(b))
	}
	*f = FlexID(n.String())
	return nil
}

// notFoundError marks a story/part id unknown to the API.
type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "story not found: " + e.id }

// IsNotFound reports whether err indicates an unknown story or part id.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

// Fetcher pulls stories over the public JSON API.
type Fetcher struct {
	baseURL string
	http    *http.Client
}

// New constructs a Fetcher against the public API.
func New() *Fetcher { return NewWithBaseURL(defaultBaseURL) }

// NewWithBaseURL constructs a Fetcher against a custom endpoint (tests).
func NewWithBaseURL(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// StoryByID fetches book metadata via the v3 stories endpoint.
func (f *Fetcher) StoryByID(ctx context.Context, id string) (*Story, error) {
	u := fmt.Sprintf("%s/api/v3/stories/%s?fields=%s", f.baseURL, url.PathEscape(id), url.QueryEscape(storyFields))
	var story Story
	if err := f.getJSON(ctx, u, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// StoryByPartID fetches book metadata via the v4 parts endpoint, which wraps
// the book under a "group" key.
func (f *Fetcher) StoryByPartID(ctx context.Context, id string) (*Story, error) {
	u := fmt.Sprintf("%s/v4/parts/%s?fields=%s", f.baseURL, url.PathEscape(id), url.QueryEscape(partFields))
	var wrapper struct {
		Group *Story `json:"group"`
	}
	if err := f.getJSON(ctx, u, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Group == nil {
		return nil, notFoundError{id: id}
	}
	return wrapper.Group, nil
}

// FetchStory resolves id as a story id first, then as a part id, and fills in
// plain-text content for every part. Paywalled stories come back with
// metadata only.
func (f *Fetcher) FetchStory(ctx context.Context, id string) (*Story, error) {
	story, err := f.StoryByID(ctx, id)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		story, err = f.StoryByPartID(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	if story.Paywalled {
		return story, nil
	}
	for i := range story.Parts {
		p := &story.Parts[i]
		if p.TextURL.Text == "" {
			continue
		}
		text, err := f.fetchPartText(ctx, p.TextURL.Text)
		if err != nil {
			return nil, fmt.Errorf("fetch part %s: %w", p.ID, err)
		}
		p.Text = text
	}
	return story, nil
}

// fetchPartText downloads one part's HTML and reduces it to plain text.
func (f *Fetcher) fetchPartText(ctx context.Context, textURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, textURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("part text http error: %s", resp.Status)
	}
	return HTMLToText(resp.Body)
}

func (f *Fetcher) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return notFoundError{id: u}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("story api http error: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
