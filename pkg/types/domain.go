package types

import "time"

// RuntimeModel describes a model installed in the local LLM runtime.
type RuntimeModel struct {
	// Model name including tag.
	// example: qwen2.5:3b
	Name string `json:"name" example:"qwen2.5:3b"`
	// Size of the model weights in bytes.
	// example: 1929912432
	Size int64 `json:"size,omitempty" example:"1929912432"`
	// Content digest reported by the runtime.
	Digest string `json:"digest,omitempty"`
	// Last modification time reported by the runtime.
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}

// Document represents a corpus document stored in the playground data dir.
type Document struct {
	// Stable identifier, the filename within the data dir.
	// example: 123456789.txt
	ID string `json:"id" example:"123456789.txt"`
	// Absolute path to the document on disk.
	Path string `json:"path"`
	// Where the document came from (fetcher URL or "local").
	// example: local
	Source string `json:"source,omitempty" example:"local"`
	// Size of the document in bytes.
	SizeBytes int64 `json:"size_bytes,omitempty"`
}

// ChatMessage is a single turn in a chat conversation.
type ChatMessage struct {
	// Role of the author: system, user, or assistant.
	// example: user
	Role string `json:"role" example:"user"`
	// Message content.
	// example: What is the playground about?
	Content string `json:"content" example:"What is the playground about?"`
}
