package notify

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v5"
)

// MailgunSender sends email through Mailgun.
type MailgunSender struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
}

// NewMailgunSender creates a sender. Without a domain or API key the sender is
// disabled and every send fails with ErrTransportDisabled.
func NewMailgunSender(domain, apiKey, senderEmail, senderName string) *MailgunSender {
	enabled := domain != "" && apiKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(apiKey)
	}

	return &MailgunSender{
		client:      client,
		domain:      domain,
		senderEmail: senderEmail,
		senderName:  senderName,
		enabled:     enabled,
	}
}

// IsEnabled reports whether credentials are configured.
func (s *MailgunSender) IsEnabled() bool {
	return s.enabled
}

// SendEmail implements EmailSender.
func (s *MailgunSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		return ErrTransportDisabled
	}

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		body,
		to,
	)

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}
