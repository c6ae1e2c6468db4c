package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingProvider struct {
	to, subject, html, text string
}

func (p *capturingProvider) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	p.to, p.subject, p.html, p.text = to, subject, htmlBody, textBody
	return nil
}

func TestNotificationServiceSendEmail(t *testing.T) {
	provider := &capturingProvider{}
	svc := NewNotificationService(provider)

	body := "<html><body><p>Hello Ada,</p>\n<p>Your code is <strong>482913</strong>.</p></body></html>"
	require.NoError(t, svc.SendEmail(context.Background(), "ada@example.com", "New Activation Code", body))

	assert.Equal(t, "ada@example.com", provider.to)
	assert.Equal(t, body, provider.html)
	assert.Contains(t, provider.text, "Hello Ada,")
	assert.Contains(t, provider.text, "482913")
	assert.NotContains(t, provider.text, "<")

	assert.Error(t, svc.SendEmail(context.Background(), "not-an-email", "s", body))
	assert.Error(t, NewNotificationService(nil).SendEmail(context.Background(), "ada@example.com", "s", body))
}

func TestHTMLToText(t *testing.T) {
	text := HTMLToText("<p>Fish &amp; Chips</p>\n\n\n<p>  Done  </p>")
	assert.Equal(t, "Fish & Chips\n\nDone", text)
}

func TestSMTPBuildMessage(t *testing.T) {
	p := NewSMTPEmailProvider("smtp.example.com", 587, "", "", "noreply@example.com", "Social Admin", time.Second, false).(*SMTPEmailProvider)

	msg, err := p.buildMessage("ada@example.com", "Password Reset Code", "<p>hi</p>", "hi")
	require.NoError(t, err)

	raw := string(msg)
	assert.Contains(t, raw, "From: \"Social Admin\" <noreply@example.com>\r\n")
	assert.Contains(t, raw, "To: ada@example.com\r\n")
	assert.Contains(t, raw, "Subject: Password Reset Code\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=")
	assert.True(t, strings.Index(raw, "text/plain") < strings.Index(raw, "text/html"))
}
