package httpapi

import (
	"context"
)

// serverBaseCtx ties NDJSON streams to daemon shutdown. main installs the
// real one before serving; until then Background keeps handlers usable in
// tests.
var serverBaseCtx = context.Background()

// SetBaseContext installs the daemon-lifetime context. Streaming handlers
// watch it so in-flight ask/chat/pull responses stop when the process is
// told to exit.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context canceled when either parent is done, so a
// stream reacts to both client disconnect and daemon shutdown. The returned
// cancel must be called when the handler finishes to free the watcher.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		}
	}()
	return ctx, cancel
}
