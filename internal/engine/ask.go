package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"playd/pkg/types"
)

// Ask answers a question from the indexed corpus: embed the question,
// retrieve the closest chunks, render the grounded prompt, and stream the
// model's answer as NDJSON token lines. The final line carries done=true,
// the full content, and the source chunks.
func (e *Engine) Ask(ctx context.Context, req types.AskRequest, w io.Writer, flush func()) (err error) {
	model := e.resolveModel(req.Model)
	defer func() { asksTotal.WithLabelValues(model, outcomeLabel(err)).Inc() }()

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return fmt.Errorf("question is required")
	}
	topK := req.TopK
	if topK <= 0 {
		topK = e.retrieveTopK
	}

	vec, err := e.runtime.Embed(ctx, e.embedModel, question)
	if err != nil {
		e.setLastError(err.Error())
		return fmt.Errorf("embed question: %w", err)
	}
	hits, err := e.index.Search(ctx, vec, topK)
	if err != nil {
		e.setLastError(err.Error())
		return fmt.Errorf("search index: %w", err)
	}
	if len(hits) == 0 {
		return indexEmptyError{}
	}
	prompt, err := renderPrompt(question, hits)
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	// Admission: per-model FIFO queue, single in-flight
	release, err := e.beginGeneration(ctx, model)
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	final, err := e.runtime.Chat(ctx, model, []types.ChatMessage{{Role: "user", Content: prompt}}, tokenWriter(w, flush))
	if err != nil {
		e.setLastError(err.Error())
		return err
	}

	sources := make([]types.SourceRef, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, types.SourceRef{DocumentID: h.DocumentID, Seq: h.Seq, Score: h.Score})
	}
	return writeJSONLine(w, flush, map[string]any{
		"done":        true,
		"content":     final.Content,
		"model":       model,
		"sources":     sources,
		"eval_count":  final.EvalCount,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
