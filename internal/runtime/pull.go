package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Pull downloads model weights by name/tag through the runtime. onProgress is
// invoked for every progress line the runtime emits.
func (c *Client) Pull(ctx context.Context, name string, onProgress func(PullProgress) error) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("model name is empty")
	}
	return c.postStream(ctx, "/api/pull", pullRequestBody{Name: name, Stream: true}, func(line []byte) error {
		var p PullProgress
		if err := json.Unmarshal(line, &p); err != nil {
			return err
		}
		// Progress lines with an error field abort the pull.
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(line, &e) == nil && e.Error != "" {
			return errors.New(e.Error)
		}
		if onProgress != nil {
			return onProgress(p)
		}
		return nil
	})
}
