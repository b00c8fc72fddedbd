// Package mail sends transactional email: password reset links.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
)

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them. Used when no sender
// address is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slog.Info("email not sent (mail disabled)", "to", msg.To, "subject", msg.Subject)
	return nil
}

// ResetLink builds the storefront reset URL carrying token.
func ResetLink(frontendURL, token string) string {
	return frontendURL + "/reset?resetToken=" + url.QueryEscape(token)
}

const resetSubject = "Your Password Reset Token"

var resetHTML = template.Must(template.New("reset").Parse(`<div class="email" style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">
  <h2>Hello {{.Name}},</h2>
  <p>Your Password Reset Token is here!</p>
  <p><a href="{{.Link}}">Click Here to Reset</a></p>
  <p>This link expires in 1 hour.</p>
  <p>Sick Fits</p>
</div>
`))

// PasswordReset renders the reset email for a user.
func PasswordReset(to, name, link string) (Message, error) {
	var buf bytes.Buffer
	err := resetHTML.Execute(&buf, struct{ Name, Link string }{name, link})
	if err != nil {
		return Message{}, fmt.Errorf("rendering reset email: %w", err)
	}

	text := fmt.Sprintf("Hello %s,\n\nYour Password Reset Token is here!\n\n%s\n\nThis link expires in 1 hour.\n", name, link)

	return Message{
		To:      to,
		Subject: resetSubject,
		HTML:    buf.String(),
		Text:    text,
	}, nil
}
