package playctl

import (
	"context"
	"fmt"

	"playd/internal/common/fsutil"
	"playd/internal/config"
	"playd/internal/corpus"
)

// fnFetch downloads stories into the data dir. Unknown ids are reported but
// do not abort the remaining fetches.
func fnFetch(cfg config.Config, ids []string) error {
	dataDir, err := fsutil.EnsureDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	f := corpus.New()
	ctx := context.Background()
	failed := 0
	for _, id := range ids {
		if err := fetchOne(ctx, f, dataDir, id); err != nil {
			failed++
			if corpus.IsNotFound(err) {
				warn("story %s not found", id)
			} else {
				errl("fetch %s: %v", id, err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("fetch: %d of %d stories failed", failed, len(ids))
	}
	return nil
}

// fetchOne downloads and saves a single story. Paywalled stories carry no
// part text, so they are skipped with a warning instead of saved.
func fetchOne(ctx context.Context, f *corpus.Fetcher, dataDir, id string) error {
	story, err := f.FetchStory(ctx, id)
	if err != nil {
		return err
	}
	if story.Paywalled {
		warn("story %s (%q) is paywalled, skipping", id, story.Title)
		return nil
	}
	path, err := corpus.Save(story, dataDir)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	info("saved %q (%d parts) -> %s", story.Title, len(story.Parts), path)
	return nil
}
