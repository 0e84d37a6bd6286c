package playctl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"playd/internal/common/fsutil"
	"playd/internal/config"
	"playd/internal/registry"
	"playd/internal/runtime"
	"playd/internal/vectorstore"
	"playd/pkg/types"
)

// fnIndex splits, embeds, and stores documents. With no arguments it indexes
// every document in the data dir.
func fnIndex(cfg config.Config, files []string) error {
	docs, err := indexTargets(cfg, files)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("nothing to index in %s; run `playctl fetch` first", cfg.DataDir)
	}

	indexPath, err := fsutil.ExpandHome(cfg.IndexPath)
	if err != nil {
		return err
	}
	store, err := vectorstore.Open(indexPath)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	rt := runtime.New(cfg.RuntimeURL)
	ctx := context.Background()
	for _, d := range docs {
		data, err := os.ReadFile(d.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", d.Path, err)
		}
		pieces := vectorstore.Split(string(data), cfg.ChunkSize, cfg.ChunkOverlap)
		chunks := make([]vectorstore.Chunk, 0, len(pieces))
		for i, p := range pieces {
			vec, err := rt.Embed(ctx, cfg.EmbedModel, p)
			if err != nil {
				return fmt.Errorf("embed %s chunk %d: %w", d.ID, i, err)
			}
			chunks = append(chunks, vectorstore.Chunk{Seq: i, Content: p, Vector: vec})
		}
		if err := store.AddDocument(ctx, d.ID, d.Source, chunks); err != nil {
			return fmt.Errorf("store %s: %w", d.ID, err)
		}
		info("indexed %s (%d chunks)", d.ID, len(chunks))
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	info("index now holds %d documents, %d chunks", stats.Documents, stats.Chunks)
	return nil
}

// indexTargets resolves explicit file arguments, or falls back to the
// registry scan of the data dir.
func indexTargets(cfg config.Config, files []string) ([]types.Document, error) {
	if len(files) == 0 {
		return registry.LoadDir(cfg.DataDir)
	}
	docs := make([]types.Document, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		fi, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", f, err)
		}
		docs = append(docs, types.Document{
			ID:        filepath.Base(abs),
			Path:      abs,
			Source:    "local",
			SizeBytes: fi.Size(),
		})
	}
	return docs, nil
}
