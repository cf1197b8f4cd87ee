package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const (
	FromName             = "Consultorio"
	maxRetries           = 3
	NotificationTemplate = "notificacion.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, name, email string, data any) (int, error)
}

// Message is a rendered template: subject plus plain and html bodies.
type Message struct {
	Subject string
	Plain   string
	HTML    string
}

// Render executes the subject, plainBody and htmlBody blocks of templateFile.
// The html body is escaped with html/template.
func Render(templateFile string, data any) (Message, error) {
	path := "templates/" + templateFile

	text, err := texttemplate.New("email").ParseFS(FS, path)
	if err != nil {
		return Message{}, fmt.Errorf("mailer: parse %s: %w", templateFile, err)
	}
	html, err := htmltemplate.New("email").ParseFS(FS, path)
	if err != nil {
		return Message{}, fmt.Errorf("mailer: parse %s: %w", templateFile, err)
	}

	var subject, plain, body bytes.Buffer
	if err := text.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, fmt.Errorf("mailer: subject: %w", err)
	}
	if err := text.ExecuteTemplate(&plain, "plainBody", data); err != nil {
		return Message{}, fmt.Errorf("mailer: plain body: %w", err)
	}
	if err := html.ExecuteTemplate(&body, "htmlBody", data); err != nil {
		return Message{}, fmt.Errorf("mailer: html body: %w", err)
	}

	return Message{
		Subject: strings.TrimSpace(subject.String()),
		Plain:   strings.TrimSpace(plain.String()),
		HTML:    body.String(),
	}, nil
}
