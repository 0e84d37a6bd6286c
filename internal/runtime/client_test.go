package runtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"playd/pkg/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestVersion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" { t.Fatalf("path=%s", r.URL.Path) }
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "0.5.7"})
	})
	v, err := c.Version(context.Background())
	if err != nil { t.Fatalf("version: %v", err) }
	if v != "0.5.7" { t.Fatalf("v=%s", v) }
}

func TestHealthUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	err := c.Health(context.Background())
	if err == nil { t.Fatalf("expected error") }
	if !IsUnavailable(err) { t.Fatalf("expected unavailable classification, got %v", err) }
}

func TestChatStreams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" { t.Fatalf("path=%s", r.URL.Path) }
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil { t.Fatalf("decode: %v", err) }
		if req.Model != "m1" || len(req.Messages) != 1 { t.Fatalf("req=%+v", req) }
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": "hel"}, "done": false})
		_ = enc.Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": "lo"}, "done": false})
		_ = enc.Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": ""}, "done": true, "eval_count": 2})
	})
	var toks []string
	final, err := c.Chat(context.Background(), "m1", []types.ChatMessage{{Role: "user", Content: "hi"}}, func(tok string) error {
		toks = append(toks, tok)
		return nil
	})
	if err != nil { t.Fatalf("chat: %v", err) }
	if final.Content != "hello" { t.Fatalf("content=%q", final.Content) }
	if final.EvalCount != 2 { t.Fatalf("eval=%d", final.EvalCount) }
	if len(toks) != 2 { t.Fatalf("tokens=%v", toks) }
}

func TestChatStreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"message": map[string]string{"content": "x"}, "done": false})
		_ = enc.Encode(map[string]any{"error": "model overloaded"})
	})
	_, err := c.Chat(context.Background(), "m1", nil, nil)
	if err == nil || err.Error() != "model overloaded" { t.Fatalf("err=%v", err) }
}

func TestGenerateStreams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" { t.Fatalf("path=%s", r.URL.Path) }
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"response": "a", "done": false})
		_ = enc.Encode(map[string]any{"response": "b", "done": true})
	})
	final, err := c.Generate(context.Background(), "m1", "p", nil)
	if err != nil { t.Fatalf("generate: %v", err) }
	if final.Content != "ab" { t.Fatalf("content=%q", final.Content) }
}

func TestPullProgress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pull" { t.Fatalf("path=%s", r.URL.Path) }
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"status": "pulling manifest"})
		_ = enc.Encode(map[string]any{"status": "downloading", "digest": "sha256:abc", "total": 100, "completed": 50})
		_ = enc.Encode(map[string]any{"status": "success"})
	})
	var seen []PullProgress
	err := c.Pull(context.Background(), "qwen2.5:3b", func(p PullProgress) error {
		seen = append(seen, p)
		return nil
	})
	if err != nil { t.Fatalf("pull: %v", err) }
	if len(seen) != 3 { t.Fatalf("lines=%d", len(seen)) }
	if seen[1].Completed != 50 || seen[1].Total != 100 { t.Fatalf("progress=%+v", seen[1]) }
}

func TestPullErrorLine(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "pull model manifest: file does not exist"})
	})
	if err := c.Pull(context.Background(), "nope", nil); err == nil {
		t.Fatalf("expected error line to abort pull")
	}
}

func TestPullEmptyName(t *testing.T) {
	c := New("http://127.0.0.1:1")
	if err := c.Pull(context.Background(), "  ", nil); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestEmbed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" { t.Fatalf("path=%s", r.URL.Path) }
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
	})
	vec, err := c.Embed(context.Background(), "e1", "some text")
	if err != nil { t.Fatalf("embed: %v", err) }
	if len(vec) != 3 { t.Fatalf("dim=%d", len(vec)) }
}

func TestEmbedEmptyVector(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{}})
	})
	if _, err := c.Embed(context.Background(), "e1", "x"); err == nil {
		t.Fatalf("expected error for empty embedding")
	}
}

func TestTagsAndHasModel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" { t.Fatalf("path=%s", r.URL.Path) }
		_ = json.NewEncoder(w).Encode(map[string]any{"models": []map[string]any{
			{"name": "qwen2.5:3b", "size": 123},
			{"name": "nomic-embed-text:latest"},
		}})
	})
	models, err := c.Tags(context.Background())
	if err != nil { t.Fatalf("tags: %v", err) }
	if len(models) != 2 || models[0].Name != "qwen2.5:3b" { t.Fatalf("models=%+v", models) }
	ok, err := c.HasModel(context.Background(), "qwen2.5")
	if err != nil || !ok { t.Fatalf("HasModel bare name: ok=%v err=%v", ok, err) }
	ok, _ = c.HasModel(context.Background(), "mistral")
	if ok { t.Fatalf("unexpected match for mistral") }
}

func TestHTTPErrorMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
	})
	_, err := c.Version(context.Background())
	if err == nil { t.Fatalf("expected error") }
	if !IsNotFound(err) { t.Fatalf("expected 404 classification: %v", err) }
}
