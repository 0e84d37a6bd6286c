package runtime

import (
	"context"
	"errors"
)

// Embed computes a dense vector for text using the given embedding model.
func (c *Client) Embed(ctx context.Context, model, text string) ([]float32, error) {
	var out embeddingsResponse
	if err := c.postJSON(ctx, "/api/embeddings", embeddingsRequest{Model: model, Prompt: text}, &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, errors.New("runtime returned empty embedding")
	}
	vec := make([]float32, len(out.Embedding))
	for i, v := range out.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
