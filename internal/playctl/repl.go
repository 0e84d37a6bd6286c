package playctl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"playd/internal/config"
	"playd/internal/runtime"
	"playd/pkg/types"
)

// fnRun is the interactive chat loop. History lives for the duration of the
// process; /bye or EOF ends the session.
func fnRun(cfg config.Config, model string) error {
	if model == "" {
		model = cfg.ChatModel
	}
	rt := runtime.New(cfg.RuntimeURL)
	ctx := context.Background()

	if ok, err := rt.HasModel(ctx, model); err == nil && !ok {
		warn("%s is not installed, pulling it first", model)
		if err := fnPull(cfg, model); err != nil {
			return err
		}
	}

	fmt.Printf("Chatting with %s. Type /bye to exit.\n", model)
	var history []types.ChatMessage
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Print(">>> ")
		if !sc.Scan() {
			fmt.Println()
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "/bye" {
			return nil
		}
		msgs := append(append([]types.ChatMessage(nil), history...), types.ChatMessage{Role: "user", Content: line})
		final, err := rt.Chat(ctx, model, msgs, func(tok string) error {
			fmt.Print(tok)
			return nil
		})
		fmt.Println()
		if err != nil {
			errl("%v", err)
			continue
		}
		history = append(history,
			types.ChatMessage{Role: "user", Content: line},
			types.ChatMessage{Role: "assistant", Content: final.Content},
		)
	}
}
