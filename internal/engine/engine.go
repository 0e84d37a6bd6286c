package engine

import (
	"sync"
	"time"
)

// Engine orchestrates ask/chat/pull against the external runtime while
// enforcing per-model admission.
type Engine struct {
	mu       sync.RWMutex
	slots    map[string]*modelSlot
	sessions map[string]*session
	lastErr  string

	runtime      RuntimeClient
	index        Index
	dataDir      string
	chatModel    string
	embedModel   string
	retrieveTopK int

	maxQueueDepth int
	maxWait       time.Duration

	startTime time.Time
}

// New constructs an Engine from EngineConfig, applying package defaults.
func New(cfg EngineConfig) *Engine {
	e := &Engine{
		slots:        make(map[string]*modelSlot),
		sessions:     make(map[string]*session),
		runtime:      cfg.Runtime,
		index:        cfg.Index,
		dataDir:      cfg.DataDir,
		chatModel:    cfg.ChatModel,
		embedModel:   cfg.EmbedModel,
		retrieveTopK: cfg.RetrieveTopK,
		startTime:    time.Now(),
	}
	if e.retrieveTopK <= 0 {
		e.retrieveTopK = defaultRetrieveTopK
	}
	if cfg.MaxQueueDepth <= 0 {
		e.maxQueueDepth = defaultMaxQueueDepth
	} else {
		e.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		e.maxWait = defaultMaxWait
	} else {
		e.maxWait = cfg.MaxWait
	}
	return e
}

// resolveModel picks the request model or falls back to the configured one.
func (e *Engine) resolveModel(requested string) string {
	if requested != "" {
		return requested
	}
	return e.chatModel
}

func (e *Engine) setLastError(msg string) {
	e.mu.Lock()
	e.lastErr = msg
	e.mu.Unlock()
}
