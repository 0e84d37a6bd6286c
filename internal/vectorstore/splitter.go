// Package vectorstore persists corpus chunks and their embeddings and serves
// cosine-similarity retrieval for the ask pipeline.
package vectorstore

import (
	"strings"
	"unicode/utf8"
)

// separators tried in order when breaking oversized text, coarsest first.
var separators = []string{"\n\n", "\n", " "}

// Split breaks text into chunks of at most size bytes, preferring paragraph
// then line then word boundaries, with a character-tail overlap carried into
// each following chunk.
func Split(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 1
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	pieces := breakPieces(text, separators, size)
	return mergePieces(pieces, size, overlap)
}

// breakPieces recursively splits any piece longer than size using the next
// separator, falling back to a hard cut on rune boundaries.
func breakPieces(text string, seps []string, size int) []string {
	if len(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardCut(text, size)
	}
	sep := seps[0]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return breakPieces(text, seps[1:], size)
	}
	var out []string
	for i, p := range parts {
		// keep the separator attached so merging restores the original text
		if i < len(parts)-1 {
			p += sep
		}
		if len(p) > size {
			out = append(out, breakPieces(p, seps[1:], size)...)
			continue
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// hardCut slices text into size-byte pieces without splitting runes.
func hardCut(text string, size int) []string {
	var out []string
	for len(text) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = size
		}
		out = append(out, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// mergePieces greedily packs pieces into chunks of at most size bytes and
// prefixes each chunk after the first with the overlap tail of its
// predecessor.
func mergePieces(pieces []string, size, overlap int) []string {
	var chunks []string
	var b strings.Builder
	flush := func() {
		c := strings.TrimSpace(b.String())
		if c != "" {
			chunks = append(chunks, c)
		}
		b.Reset()
	}
	for _, p := range pieces {
		if b.Len() > 0 && b.Len()+len(p) > size {
			tail := overlapTail(b.String(), overlap)
			flush()
			// carry the tail only when the next piece still fits under size
			if tail != "" && len(tail)+len(p) <= size {
				b.WriteString(tail)
			}
		}
		b.WriteString(p)
	}
	flush()
	return chunks
}

// overlapTail returns the last n bytes of s, extended left to the nearest
// whitespace so the overlap does not start mid-word.
func overlapTail(s string, n int) string {
	if n <= 0 || len(s) == 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	tail := s[len(s)-n:]
	if idx := strings.IndexAny(tail, " \n"); idx >= 0 {
		tail = tail[idx+1:]
	}
	return tail
}
