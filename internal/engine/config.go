package engine

import (
	"context"
	"time"

	"playd/internal/runtime"
	"playd/internal/vectorstore"
	"playd/pkg/types"
)

// Defaults applied when corresponding EngineConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultRetrieveTopK  = 4
)

// RuntimeClient is the slice of the runtime API the engine depends on.
type RuntimeClient interface {
	Chat(ctx context.Context, model string, messages []types.ChatMessage, onToken func(string) error) (runtime.Final, error)
	Embed(ctx context.Context, model, text string) ([]float32, error)
	Pull(ctx context.Context, name string, onProgress func(runtime.PullProgress) error) error
	Tags(ctx context.Context) ([]types.RuntimeModel, error)
	Version(ctx context.Context) (string, error)
}

// Index is the retrieval surface of the vector store.
type Index interface {
	Search(ctx context.Context, vec []float32, k int) ([]vectorstore.Hit, error)
	Stats(ctx context.Context) (types.IndexStats, error)
}

// EngineConfig encapsulates all tunables for Engine construction.
type EngineConfig struct {
	Runtime      RuntimeClient
	Index        Index
	DataDir      string
	ChatModel    string
	EmbedModel   string
	RetrieveTopK int

	MaxQueueDepth int
	MaxWait       time.Duration
}
