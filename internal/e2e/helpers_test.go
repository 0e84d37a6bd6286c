package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"playd/internal/engine"
	"playd/internal/httpapi"
	"playd/internal/runtime"
	"playd/internal/vectorstore"
	"playd/pkg/types"
)

const (
	chatModel  = "test-chat:latest"
	embedModel = "test-embed:latest"
)

// fakeRuntime imitates the runtime HTTP API: version, tags, embeddings,
// streaming chat, and streaming pull. Embeddings are keyword counts so
// retrieval order is deterministic.
type fakeRuntime struct {
	mu       sync.Mutex
	lastChat []types.ChatMessage
	srv      *httptest.Server
}

func newFakeRuntime(t *testing.T) *fakeRuntime {
	t.Helper()
	f := &fakeRuntime{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "0.0.0-fake"})
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"models": []map[string]any{
			{"name": chatModel, "size": 1024},
			{"name": embedModel, "size": 256},
		}})
	})
	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": embedText(req.Prompt)})
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string              `json:"model"`
			Messages []types.ChatMessage `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.lastChat = append([]types.ChatMessage(nil), req.Messages...)
		f.mu.Unlock()
		enc := json.NewEncoder(w)
		for _, tok := range []string{"the ", "cat ", "sleeps"} {
			line := map[string]any{"message": map[string]string{"role": "assistant", "content": tok}, "done": false}
			_ = enc.Encode(line)
		}
		_ = enc.Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": ""}, "done": true, "eval_count": 3, "total_duration": int64(5 * time.Millisecond)})
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		enc := json.NewEncoder(w)
		_ = enc.Encode(map[string]any{"status": "pulling manifest"})
		_ = enc.Encode(map[string]any{"status": "downloading", "total": int64(100), "completed": int64(100)})
		_ = enc.Encode(map[string]any{"status": "success"})
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRuntime) lastMessages() []types.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.ChatMessage(nil), f.lastChat...)
}

// embedText maps text to keyword counts plus a constant dimension so no
// vector has zero norm.
func embedText(s string) []float64 {
	lower := strings.ToLower(s)
	vec := []float64{1, 0, 0, 0}
	for i, w := range []string{"cat", "dog", "fish"} {
		vec[i+1] = float64(strings.Count(lower, w))
	}
	return vec
}

// newPlaygroundServer wires the real client, store, engine, and mux against
// the fake runtime and seeds the index with the given documents.
func newPlaygroundServer(t *testing.T, docs map[string]string) (*httptest.Server, *fakeRuntime) {
	t.Helper()
	f := newFakeRuntime(t)
	rt := runtime.New(f.srv.URL)

	store, err := vectorstore.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	for id, content := range docs {
		pieces := vectorstore.Split(content, 200, 0)
		chunks := make([]vectorstore.Chunk, 0, len(pieces))
		for i, p := range pieces {
			vec, err := rt.Embed(ctx, embedModel, p)
			if err != nil {
				t.Fatalf("embed: %v", err)
			}
			chunks = append(chunks, vectorstore.Chunk{Seq: i, Content: p, Vector: vec})
		}
		if err := store.AddDocument(ctx, id, "local", chunks); err != nil {
			t.Fatalf("add document: %v", err)
		}
	}

	eng := engine.New(engine.EngineConfig{
		Runtime:    rt,
		Index:      store,
		DataDir:    t.TempDir(),
		ChatModel:  chatModel,
		EmbedModel: embedModel,
	})
	srv := httptest.NewServer(httpapi.NewMux(eng))
	t.Cleanup(srv.Close)
	return srv, f
}

// postNDJSON posts a JSON body and returns the decoded NDJSON lines.
func postNDJSON(t *testing.T, url, body string) (int, []map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	var lines []map[string]any
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(strings.TrimSpace(sc.Text())) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	return resp.StatusCode, lines
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func lastLine(t *testing.T, lines []map[string]any) map[string]any {
	t.Helper()
	if len(lines) == 0 {
		t.Fatal("no ndjson lines")
	}
	return lines[len(lines)-1]
}
