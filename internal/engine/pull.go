package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"playd/internal/runtime"
)

// PullModel proxies the runtime's pull progress stream as NDJSON lines and
// terminates with a done line on success.
func (e *Engine) PullModel(ctx context.Context, name string, w io.Writer, flush func()) (err error) {
	defer func() { pullsTotal.WithLabelValues(outcomeLabel(err)).Inc() }()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("model name is required")
	}
	err = e.runtime.Pull(ctx, name, func(p runtime.PullProgress) error {
		return writeJSONLine(w, flush, p)
	})
	if err != nil {
		e.setLastError(err.Error())
		return err
	}
	return writeJSONLine(w, flush, map[string]any{"done": true, "name": name})
}
