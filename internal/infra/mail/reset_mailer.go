package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

const resetSubject = "Reset Your Password - ToDo App"

var resetHTML = template.Must(template.New("reset").Parse(`<h1>Reset Your Password</h1>
<p>You requested a password reset. Click the button below to reset your password:</p>
<p>
  <a href="{{.URL}}" style="display: inline-block; padding: 12px 24px; background-color: #007bff; color: white; text-decoration: none; border-radius: 4px;">
    Reset Password
  </a>
</p>
<p>Or copy and paste this link into your browser:</p>
<p>{{.URL}}</p>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, please ignore this email.</p>
`))

// リセットリンクのメールを組み立ててDispatcherに渡す
type PasswordResetMailer struct {
	dispatcher  Dispatcher
	frontendURL string
}

func NewPasswordResetMailer(dispatcher Dispatcher, frontendURL string) *PasswordResetMailer {
	return &PasswordResetMailer{
		dispatcher:  dispatcher,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, email string, token string) error {
	link := m.frontendURL + "/reset-password?token=" + url.QueryEscape(token)

	var html bytes.Buffer
	if err := resetHTML.Execute(&html, struct{ URL string }{URL: link}); err != nil {
		return fmt.Errorf("render reset mail: %w", err)
	}

	text := "You requested a password reset. Click the following link to reset your password:\n\n" +
		link + "\n\n" +
		"This link will expire in 1 hour.\n\n" +
		"If you didn't request this, please ignore this email."

	return m.dispatcher.Send(ctx, Message{
		To:      email,
		Subject: resetSubject,
		Text:    text,
		HTML:    html.String(),
	})
}
