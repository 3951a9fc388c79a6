package usecase

import (
	"bytes"
	_ "embed"
	"text/template"

	"docrag/internal/domain"
)

//go:embed templates/system_prompt.txt
var systemPrompt string

//go:embed templates/user_prompt.txt
var userPromptText string

var userPromptTmpl = template.Must(
	template.New("user_prompt").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(userPromptText),
)

type promptData struct {
	Question  string
	Retrieved []domain.RetrievalResult
}

// renderUserPrompt assembles the grounded user message: every retrieved
// chunk tagged with its page and section, then the literal question. This
// is a prompting contract with the generation service, not something the
// core can enforce; the response is returned to the caller as-is.
func renderUserPrompt(question string, retrieved []domain.RetrievalResult) (string, error) {
	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, promptData{
		Question:  question,
		Retrieved: retrieved,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
