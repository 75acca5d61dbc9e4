package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var subjects = map[string]string{
	TypeWelcome:                  "Job Board - Welcome",
	TypeApplicationStatusChanged: "Job Board - Application update",
	TypePostingApprovalChanged:   "Job Board - Job posting review",
}

// Render returns the subject and HTML body for msg.
func Render(msg Message) (string, string, error) {
	subject, ok := subjects[msg.Type]
	if !ok {
		return "", "", fmt.Errorf("unsupported message type %q", msg.Type)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, msg.Type+".html", msg.Data); err != nil {
		return "", "", err
	}

	return subject, buf.String(), nil
}
