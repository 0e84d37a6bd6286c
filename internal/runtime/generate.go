package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"playd/pkg/types"
)

// Chat streams a chat completion for the given message history. onToken is
// invoked for every content fragment; the final result carries the full
// accumulated content and usage numbers when the runtime reports them.
func (c *Client) Chat(ctx context.Context, model string, messages []types.ChatMessage, onToken func(string) error) (Final, error) {
	var final Final
	var b strings.Builder
	err := c.postStream(ctx, "/api/chat", chatRequest{Model: model, Messages: messages, Stream: true}, func(line []byte) error {
		var chunk chatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return err
		}
		if chunk.Error != "" {
			return errors.New(chunk.Error)
		}
		if frag := chunk.Message.Content; frag != "" {
			b.WriteString(frag)
			if onToken != nil {
				if err := onToken(frag); err != nil {
					return err
				}
			}
		}
		if chunk.Done {
			final.EvalCount = chunk.EvalCount
			final.Duration = time.Duration(chunk.TotalDuration)
		}
		return nil
	})
	final.Content = b.String()
	return final, err
}

// Generate streams a plain prompt completion (no chat framing).
func (c *Client) Generate(ctx context.Context, model, prompt string, onToken func(string) error) (Final, error) {
	var final Final
	var b strings.Builder
	err := c.postStream(ctx, "/api/generate", generateRequest{Model: model, Prompt: prompt, Stream: true}, func(line []byte) error {
		var chunk generateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return err
		}
		if chunk.Error != "" {
			return errors.New(chunk.Error)
		}
		if chunk.Response != "" {
			b.WriteString(chunk.Response)
			if onToken != nil {
				if err := onToken(chunk.Response); err != nil {
					return err
				}
			}
		}
		if chunk.Done {
			final.EvalCount = chunk.EvalCount
			final.Duration = time.Duration(chunk.TotalDuration)
		}
		return nil
	})
	final.Content = b.String()
	return final, err
}
