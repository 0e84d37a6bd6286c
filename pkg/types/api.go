package types

// AskRequest is the payload for POST /ask: a retrieval-augmented question
// answered from the indexed corpus.
type AskRequest struct {
	// Required question text.
	// example: What is Ashu AI?
	Question string `json:"question" example:"What is Ashu AI?"`
	// Optional model name; the server default is used when empty.
	// example: qwen2.5:3b
	Model string `json:"model,omitempty" example:"qwen2.5:3b"`
	// Number of corpus chunks to retrieve. 0 uses the server default.
	// example: 4
	TopK int `json:"top_k,omitempty" example:"4"`
}

// ChatRequest is the payload for POST /chat. When SessionID is empty a new
// session is created and its id is reported on the final NDJSON line.
type ChatRequest struct {
	// Optional session id from a previous response.
	SessionID string `json:"session_id,omitempty"`
	// Optional model name; the server default is used when empty.
	// example: qwen2.5:3b
	Model string `json:"model,omitempty" example:"qwen2.5:3b"`
	// Required user message for this turn.
	// example: Write a haiku about the ocean.
	Message string `json:"message" example:"Write a haiku about the ocean."`
}

// PullRequest is the payload for POST /pull.
type PullRequest struct {
	// Required model name, optionally with a tag.
	// example: qwen2.5:3b
	Name string `json:"name" example:"qwen2.5:3b"`
}

// ModelsResponse wraps the list of runtime models returned by GET /models.
type ModelsResponse struct {
	Models []RuntimeModel `json:"models"`
}

// DocumentsResponse wraps the corpus listing returned by GET /documents.
type DocumentsResponse struct {
	Documents []Document `json:"documents"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: question is required
	Error string `json:"error" example:"question is required"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// SourceRef identifies a corpus chunk that grounded an answer.
type SourceRef struct {
	// Document the chunk belongs to.
	// example: 123456789.txt
	DocumentID string `json:"document_id" example:"123456789.txt"`
	// Chunk sequence number within the document.
	Seq int `json:"seq"`
	// Cosine similarity score against the question.
	// example: 0.83
	Score float64 `json:"score" example:"0.83"`
}

// ModelStatus summarizes per-model admission state for /status.
type ModelStatus struct {
	// Model name.
	// example: qwen2.5:3b
	Model string `json:"model" example:"qwen2.5:3b"`
	// Queued requests waiting for the in-flight slot.
	QueueLen int `json:"queue_len"`
	// In-flight generations (0 or 1).
	Inflight int `json:"inflight"`
	// Queue capacity before backpressure triggers.
	MaxQueueDepth int `json:"max_queue_depth"`
	// Last time this model served a request (unix seconds).
	LastUsed int64 `json:"last_used_unix,omitempty"`
}

// IndexStats reports the size of the vector index.
type IndexStats struct {
	// Number of indexed documents.
	Documents int `json:"documents"`
	// Number of stored chunks.
	Chunks int `json:"chunks"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state: ready, degraded, or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Whether the local LLM runtime answered its version endpoint.
	RuntimeReachable bool `json:"runtime_reachable"`
	// Runtime version string when reachable.
	// example: 0.5.7
	RuntimeVersion string `json:"runtime_version,omitempty" example:"0.5.7"`
	// Per-model admission gauges.
	Models []ModelStatus `json:"models"`
	// Vector index size.
	Index IndexStats `json:"index"`
	// Active chat sessions held in memory.
	Sessions int `json:"sessions"`
	// Last error observed by the engine (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	ServerTimeUnix int64 `json:"server_time_unix"`
}
