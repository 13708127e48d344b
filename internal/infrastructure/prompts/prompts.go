package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"maillet-agent/internal/domain/entity"
)

//go:embed system.txt
var systemTemplate string

type systemPromptData struct {
	SenderEmail string
}

// SystemPrompt renders the system instruction with the sender's email
// baked in, so the model cannot be talked into acting for another
// account.
func SystemPrompt(senderEmail string) string {
	tmpl, err := template.New("system").Parse(systemTemplate)
	if err != nil {
		// The template is embedded; a parse failure is a programming
		// error, but the raw text is still a usable prompt.
		return systemTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, systemPromptData{SenderEmail: senderEmail}); err != nil {
		return systemTemplate
	}
	return buf.String()
}

// UserPrompt renders the inbound email as the user turn.
func UserPrompt(email entity.InboundEmail) string {
	return fmt.Sprintf("From: %s\nSubject: %s\n\n%s", email.From, email.Subject, email.TextBody)
}
