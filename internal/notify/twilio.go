package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends SMS through the Twilio Messages API.
type TwilioSender struct {
	client  *twilio.RestClient
	from    string
	enabled bool
}

// NewTwilioSender creates a sender. With empty credentials the sender is
// disabled and every send fails with ErrTransportDisabled.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	s := &TwilioSender{from: from}
	if accountSID != "" && authToken != "" && from != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		s.enabled = true
	}
	return s
}

// IsEnabled reports whether credentials are configured.
func (s *TwilioSender) IsEnabled() bool {
	return s.enabled
}

// SendSMS implements SMSSender. The Twilio client has no context support, so
// the call runs in its own goroutine and is abandoned when ctx expires.
func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if !s.enabled {
		return ErrTransportDisabled
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	done := make(chan error, 1)
	go func() {
		_, err := s.client.Api.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending sms to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending sms to %s: %w", to, ctx.Err())
	}
}
