package engine

import (
	"encoding/json"
	"io"
)

// tokenLineJSON formats a token NDJSON line using json.Marshal for correctness.
func tokenLineJSON(tok string) []byte {
	type tokenMsg struct {
		Token string `json:"token"`
	}
	b, _ := json.Marshal(tokenMsg{Token: tok})
	return append(b, '\n')
}

// writeJSONLine writes v as one NDJSON line and flushes.
func writeJSONLine(w io.Writer, flush func(), v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	if flush != nil {
		flush()
	}
	return nil
}

// tokenWriter returns an onToken callback that emits NDJSON token lines.
func tokenWriter(w io.Writer, flush func()) func(string) error {
	return func(tok string) error {
		if _, err := w.Write(tokenLineJSON(tok)); err != nil {
			return err
		}
		tokensStreamed.Inc()
		if flush != nil {
			flush()
		}
		return nil
	}
}
