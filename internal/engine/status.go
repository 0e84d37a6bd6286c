package engine

import (
	"context"
	"time"

	"playd/internal/registry"
	"playd/pkg/types"
)

// Ready reports whether the external runtime answers its version endpoint.
func (e *Engine) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := e.runtime.Version(ctx)
	return err == nil
}

// ListModels returns the models installed in the runtime.
func (e *Engine) ListModels(ctx context.Context) ([]types.RuntimeModel, error) {
	return e.runtime.Tags(ctx)
}

// ListDocuments scans the data dir for corpus documents.
func (e *Engine) ListDocuments() ([]types.Document, error) {
	return registry.LoadDir(e.dataDir)
}

// Status builds a detailed status response for /status.
func (e *Engine) Status(ctx context.Context) types.StatusResponse {
	resp := types.StatusResponse{
		State:          "ready",
		UptimeSeconds:  int64(time.Since(e.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}

	vctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if v, err := e.runtime.Version(vctx); err == nil {
		resp.RuntimeReachable = true
		resp.RuntimeVersion = v
	} else {
		resp.State = "degraded"
	}

	if e.index != nil {
		if st, err := e.index.Stats(ctx); err == nil {
			resp.Index = st
		}
	}

	e.mu.RLock()
	resp.LastError = e.lastErr
	resp.Sessions = len(e.sessions)
	resp.Models = make([]types.ModelStatus, 0, len(e.slots))
	for _, s := range e.slots {
		ms := types.ModelStatus{
			Model:         s.model,
			QueueLen:      len(s.queueCh),
			Inflight:      len(s.genCh),
			MaxQueueDepth: cap(s.queueCh),
		}
		if !s.lastUsed.IsZero() {
			ms.LastUsed = s.lastUsed.Unix()
		}
		resp.Models = append(resp.Models, ms)
	}
	e.mu.RUnlock()
	return resp
}
