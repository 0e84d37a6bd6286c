package runtime

import (
	"context"
	"strings"

	"playd/pkg/types"
)

// Tags lists the models installed in the runtime.
func (c *Client) Tags(ctx context.Context) ([]types.RuntimeModel, error) {
	var out tagsResponse
	if err := c.getJSON(ctx, "/api/tags", &out); err != nil {
		return nil, err
	}
	models := make([]types.RuntimeModel, 0, len(out.Models))
	for _, m := range out.Models {
		models = append(models, types.RuntimeModel{
			Name:       m.Name,
			Size:       m.Size,
			Digest:     m.Digest,
			ModifiedAt: m.ModifiedAt,
		})
	}
	return models, nil
}

// HasModel reports whether the runtime already has name installed. A bare
// name matches any tag of that model.
func (c *Client) HasModel(ctx context.Context, name string) (bool, error) {
	models, err := c.Tags(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if m.Name == name {
			return true, nil
		}
		// "qwen2.5" matches "qwen2.5:3b"
		if idx := strings.IndexByte(m.Name, ':'); idx > 0 && m.Name[:idx] == name {
			return true, nil
		}
	}
	return false, nil
}
