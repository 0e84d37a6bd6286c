package engine

import (
	"strings"
	"text/template"

	"playd/internal/vectorstore"
)

// askTemplate grounds the model in retrieved context and tells it to refuse
// when the context does not contain the answer.
const askTemplate = `You are a helpful assistant that can answer questions about the text provided.
If you don't know the answer, just say "I don't know".
Use 10 sentences minimum and keep the answer concise.
Question:
{{.Question}}
Context:
{{.Context}}
Answer:
`

var askTmpl = template.Must(template.New("ask").Parse(askTemplate))

// AskPrompt fills the ask template with a question and retrieved chunks.
// Shared with the CLI so one-shot asks use the same grounding prompt.
func AskPrompt(question string, hits []vectorstore.Hit) (string, error) {
	return renderPrompt(question, hits)
}

// renderPrompt joins the retrieved chunks and fills the ask template.
func renderPrompt(question string, hits []vectorstore.Hit) (string, error) {
	contents := make([]string, 0, len(hits))
	for _, h := range hits {
		contents = append(contents, h.Content)
	}
	var b strings.Builder
	err := askTmpl.Execute(&b, struct {
		Question string
		Context  string
	}{Question: question, Context: strings.Join(contents, "\n\n")})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
