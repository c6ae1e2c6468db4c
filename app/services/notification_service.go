package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"log"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationService delivers account lifecycle emails
type NotificationService interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// EmailProvider interface for email sending
type EmailProvider interface {
	SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	emailProvider EmailProvider
}

// NewNotificationService creates a new notification service
func NewNotificationService(emailProvider EmailProvider) NotificationService {
	return &NotificationServiceImpl{
		emailProvider: emailProvider,
	}
}

// SendEmail sends an HTML email with a plain-text alternative derived from it
func (s *NotificationServiceImpl) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if s.emailProvider == nil {
		return fmt.Errorf("email provider not configured")
	}

	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid email address %q: %w", to, err)
	}

	return s.emailProvider.SendEmail(ctx, to, subject, htmlBody, HTMLToText(htmlBody))
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	blankLinesPattern = regexp.MustCompile(`\n\s*\n+`)
)

// HTMLToText strips tags from an HTML body to build the text/plain part
func HTMLToText(body string) string {
	text := htmlTagPattern.ReplaceAllString(body, "\n")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

type MockEmailProvider struct{}

func NewMockEmailProvider() EmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("Email sent to %s [%s]: %s", to, subject, textBody)
	return nil
}

// SMTPEmailProvider sends multipart/alternative messages through an SMTP relay using STARTTLS when offered
type SMTPEmailProvider struct {
	host               string
	port               int
	username           string
	password           string
	fromEmail          string
	fromName           string
	timeout            time.Duration
	insecureSkipVerify bool
}

func NewSMTPEmailProvider(host string, port int, username, password, fromEmail, fromName string, timeout time.Duration, insecureSkipVerify bool) EmailProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPEmailProvider{
		host:               host,
		port:               port,
		username:           username,
		password:           password,
		fromEmail:          fromEmail,
		fromName:           fromName,
		timeout:            timeout,
		insecureSkipVerify: insecureSkipVerify,
	}
}

func (p *SMTPEmailProvider) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	msg, err := p.buildMessage(to, subject, htmlBody, textBody)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(p.host, strconv.Itoa(p.port))
	dialer := &net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot connect to email server %s: %w", addr, err)
	}

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, p.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: p.host, InsecureSkipVerify: p.insecureSkipVerify} //nolint:gosec
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("smtp starttls failed: %w", err)
		}
	}

	if p.username != "" {
		if err := client.Auth(smtp.PlainAuth("", p.username, p.password, p.host)); err != nil {
			return fmt.Errorf("email authentication failed: %w", err)
		}
	}

	if err := client.Mail(p.fromEmail); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish email body: %w", err)
	}

	log.Printf("Email sent via SMTP to %s [%s]", to, subject)
	return client.Quit()
}

func (p *SMTPEmailProvider) buildMessage(to, subject, htmlBody, textBody string) ([]byte, error) {
	from := mail.Address{Name: p.fromName, Address: p.fromEmail}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", textBody},
		{"text/html; charset=UTF-8", htmlBody},
	}
	for _, part := range parts {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", part.contentType)
		header.Set("Content-Transfer-Encoding", "8bit")
		w, err := mw.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to build email part: %w", err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to build email part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build email: %w", err)
	}

	var msg bytes.Buffer
	headers := []string{
		"From: " + from.String(),
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Date: " + time.Now().UTC().Format(time.RFC1123Z),
		"Message-ID: <" + uuid.NewString() + "@" + p.host + ">",
		"MIME-Version: 1.0",
		"Content-Type: multipart/alternative; boundary=" + mw.Boundary(),
	}
	for _, h := range headers {
		msg.WriteString(h)
		msg.WriteString("\r\n")
	}
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}
