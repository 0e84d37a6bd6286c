package corpus

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLToText reduces an HTML document to readable plain text: script and
// style subtrees are dropped, text nodes are collected, and whitespace is
// collapsed so each non-empty phrase lands on its own line.
func HTMLToText(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	collectText(root, &b)
	return cleanText(b.String()), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	// block-level breaks keep paragraphs apart after collapsing
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "br", "div", "h1", "h2", "h3", "h4", "li":
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// cleanText trims every line, splits runs of double spaces into separate
// phrases, and joins the non-empty ones with newlines.
func cleanText(text string) string {
	var phrases []string
	for _, line := range strings.Split(text, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if p := strings.TrimSpace(phrase); p != "" {
				phrases = append(phrases, p)
			}
		}
	}
	return strings.Join(phrases, "\n")
}
