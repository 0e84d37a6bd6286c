package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"playd/pkg/types"
)

// maxSessionTurns bounds in-memory history per session; older turns are
// dropped pairwise so the conversation keeps its most recent context.
const maxSessionTurns = 64

// Chat runs one turn of a session conversation, streaming NDJSON token lines.
// An empty SessionID starts a new session; its id is reported on the final
// line so callers can continue the conversation.
func (e *Engine) Chat(ctx context.Context, req types.ChatRequest, w io.Writer, flush func()) (err error) {
	model := e.resolveModel(req.Model)
	defer func() { chatsTotal.WithLabelValues(model, outcomeLabel(err)).Inc() }()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return fmt.Errorf("message is required")
	}

	sess, err := e.takeSession(req.SessionID, model)
	if err != nil {
		return err
	}
	history := append(append([]types.ChatMessage(nil), sess.history...), types.ChatMessage{Role: "user", Content: message})

	release, err := e.beginGeneration(ctx, model)
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	final, err := e.runtime.Chat(ctx, model, history, tokenWriter(w, flush))
	if err != nil {
		e.setLastError(err.Error())
		return err
	}

	e.commitTurn(sess.id, message, final.Content)
	return writeJSONLine(w, flush, map[string]any{
		"done":        true,
		"content":     final.Content,
		"model":       model,
		"session_id":  sess.id,
		"eval_count":  final.EvalCount,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// takeSession returns an existing session or creates a new one when id is
// empty. The returned value is a snapshot safe to read without the lock.
func (e *Engine) takeSession(id, model string) (session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id == "" {
		s := &session{id: uuid.NewString(), model: model, lastUsed: time.Now()}
		e.sessions[s.id] = s
		return *s, nil
	}
	s, ok := e.sessions[id]
	if !ok {
		return session{}, sessionNotFoundError{id: id}
	}
	s.lastUsed = time.Now()
	return *s, nil
}

// commitTurn appends the user/assistant pair to the session history.
func (e *Engine) commitTurn(id, userMsg, assistantMsg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return
	}
	s.history = append(s.history,
		types.ChatMessage{Role: "user", Content: userMsg},
		types.ChatMessage{Role: "assistant", Content: assistantMsg},
	)
	if len(s.history) > maxSessionTurns {
		s.history = s.history[len(s.history)-maxSessionTurns:]
	}
	s.lastUsed = time.Now()
}
