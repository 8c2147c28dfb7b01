// Package notify sends owner notifications over SMS and email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/phone"
)

var (
	// ErrDispatchFailed wraps failures of one or both sends of a dispatch.
	ErrDispatchFailed = errors.New("notification dispatch failed")
	// ErrTransportDisabled is returned by a sender that has no credentials configured.
	ErrTransportDisabled = errors.New("notification transport not configured")
)

// DefaultTimeout bounds each external send when Dispatcher.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// SMSSender delivers a text message to an E.164 number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// EmailSender delivers a plain-text email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Message is the content of one notification event.
type Message struct {
	Subject string
	SMS     string
	Email   string
}

// Dispatcher sends one SMS and one email per notification.
type Dispatcher struct {
	SMS     SMSSender
	Email   EmailSender
	Timeout time.Duration
}

// Notify normalizes the item's phone number and then sends the SMS and the email.
// A phone error aborts before anything is sent. The two sends are independent:
// both are attempted, a send that succeeded is not undone, and any failure is
// reported wrapped in ErrDispatchFailed.
func (d *Dispatcher) Notify(ctx context.Context, item *model.Item, msg Message) error {
	to, err := phone.Normalize(item.Phone)
	if err != nil {
		return err
	}

	var errs []error
	if err := d.send(ctx, func(ctx context.Context) error {
		return d.SMS.SendSMS(ctx, to, msg.SMS)
	}); err != nil {
		slog.Warn("sms notification failed", "item", item.ID, "error", err)
		errs = append(errs, fmt.Errorf("sms: %w", err))
	}
	if err := d.send(ctx, func(ctx context.Context) error {
		return d.Email.SendEmail(ctx, item.Email, msg.Subject, msg.Email)
	}); err != nil {
		slog.Warn("email notification failed", "item", item.ID, "error", err)
		errs = append(errs, fmt.Errorf("email: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, errors.Join(errs...))
	}
	slog.Info("owner notified", "item", item.ID)
	return nil
}

func (d *Dispatcher) send(ctx context.Context, fn func(context.Context) error) error {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

// ReportedMessage is sent when an item is flagged missing.
func ReportedMessage(itemID string) Message {
	text := fmt.Sprintf("Your item with ID %s has been reported as missing.", itemID)
	return Message{
		Subject: "Item Reported as Missing",
		SMS:     text,
		Email:   text,
	}
}

// RelayMessage carries a finder's free-text message to the owner.
func RelayMessage(itemID, content string) Message {
	return Message{
		Subject: "Message regarding your missing item",
		SMS:     fmt.Sprintf("Your item with ID %s has a message: %s", itemID, content),
		Email:   fmt.Sprintf("Message regarding your item with ID %s: %s", itemID, content),
	}
}
