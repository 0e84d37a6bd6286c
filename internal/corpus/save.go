package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes a fetched story into dataDir as story_<id>.json (full metadata)
// and story_<id>.txt (combined plain text, one header then all parts). The
// text file is what the indexer picks up. Returns the text file path.
func Save(story *Story, dataDir string) (string, error) {
	if story == nil || story.ID == "" {
		return "", fmt.Errorf("story has no id")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir data dir: %w", err)
	}
	base := "story_" + string(story.ID)

	meta, err := json.MarshalIndent(story, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal story: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, base+".json"), meta, 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	txtPath := filepath.Join(dataDir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(combinedText(story)), 0o644); err != nil {
		return "", fmt.Errorf("write text: %w", err)
	}
	return txtPath, nil
}

// combinedText renders the story header and all part texts into one document.
func combinedText(story *Story) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", orUnknown(story.Title))
	fmt.Fprintf(&b, "Author: %s\n", orUnknown(story.User.Name))
	fmt.Fprintf(&b, "Description: %s\n", story.Description)
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	for i, p := range story.Parts {
		if p.Text == "" {
			continue
		}
		b.WriteString("\n" + strings.Repeat("=", 80) + "\n")
		title := p.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "Part %d: %s\n", i+1, title)
		b.WriteString(strings.Repeat("=", 80) + "\n\n")
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
