package playctl

import (
	"context"
	"fmt"

	"playd/internal/common/fsutil"
	"playd/internal/config"
	"playd/internal/engine"
	"playd/internal/runtime"
	"playd/internal/vectorstore"
	"playd/pkg/types"
)

// fnAsk answers a one-shot question grounded in the local index, streaming
// the answer to stdout.
func fnAsk(cfg config.Config, question string) error {
	indexPath, err := fsutil.ExpandHome(cfg.IndexPath)
	if err != nil {
		return err
	}
	if !fsutil.PathExists(indexPath) {
		return engine.ErrIndexEmpty()
	}
	store, err := vectorstore.Open(indexPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	rt := runtime.New(cfg.RuntimeURL)
	ctx := context.Background()
	vec, err := rt.Embed(ctx, cfg.EmbedModel, question)
	if err != nil {
		return fmt.Errorf("embed question: %w", err)
	}
	hits, err := store.Search(ctx, vec, cfg.RetrieveTopK)
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	if len(hits) == 0 {
		return engine.ErrIndexEmpty()
	}
	prompt, err := engine.AskPrompt(question, hits)
	if err != nil {
		return err
	}

	final, err := rt.Chat(ctx, cfg.ChatModel, []types.ChatMessage{{Role: "user", Content: prompt}}, func(tok string) error {
		fmt.Print(tok)
		return nil
	})
	fmt.Println()
	if err != nil {
		return err
	}
	for _, h := range hits {
		debug("source %s#%d score=%.3f", h.DocumentID, h.Seq, h.Score)
	}
	debug("eval_count=%d duration=%s", final.EvalCount, final.Duration)
	return nil
}
