package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/phone"
)

type sentSMS struct{ to, body string }
type sentEmail struct{ to, subject, body string }

type fakeSMS struct {
	sent []sentSMS
	err  error
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{to, body})
	return nil
}

type fakeEmail struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmail) SendEmail(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to, subject, body})
	return nil
}

func testItem() *model.Item {
	return &model.Item{ID: "abc12", Name: "Backpack", Email: "a@x.com", Phone: "+1 202-555-0172"}
}

func TestNotifySendsBoth(t *testing.T) {
	sms, email := &fakeSMS{}, &fakeEmail{}
	d := &Dispatcher{SMS: sms, Email: email}

	err := d.Notify(context.Background(), testItem(), ReportedMessage("abc12"))
	require.NoError(t, err)

	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+12025550172", sms.sent[0].to)
	assert.Contains(t, sms.sent[0].body, "abc12")

	require.Len(t, email.sent, 1)
	assert.Equal(t, "a@x.com", email.sent[0].to)
	assert.Equal(t, "Item Reported as Missing", email.sent[0].subject)
	assert.Contains(t, email.sent[0].body, "abc12")
}

func TestNotifyInvalidPhoneSendsNothing(t *testing.T) {
	sms, email := &fakeSMS{}, &fakeEmail{}
	d := &Dispatcher{SMS: sms, Email: email}

	item := testItem()
	item.Phone = "not-a-phone"
	err := d.Notify(context.Background(), item, RelayMessage(item.ID, "found it"))

	assert.ErrorIs(t, err, phone.ErrInvalidFormat)
	assert.NotErrorIs(t, err, ErrDispatchFailed)
	assert.Empty(t, sms.sent)
	assert.Empty(t, email.sent)
}

func TestNotifyPartialFailure(t *testing.T) {
	smsErr := errors.New("twilio down")
	sms, email := &fakeSMS{err: smsErr}, &fakeEmail{}
	d := &Dispatcher{SMS: sms, Email: email}

	err := d.Notify(context.Background(), testItem(), RelayMessage("abc12", "hello"))
	assert.ErrorIs(t, err, ErrDispatchFailed)
	assert.ErrorIs(t, err, smsErr)

	// The email was still sent.
	assert.Len(t, email.sent, 1)
}

func TestNotifyBothFail(t *testing.T) {
	d := &Dispatcher{SMS: &fakeSMS{err: ErrTransportDisabled}, Email: &fakeEmail{err: ErrTransportDisabled}}

	err := d.Notify(context.Background(), testItem(), RelayMessage("abc12", "hello"))
	assert.ErrorIs(t, err, ErrDispatchFailed)
	assert.ErrorIs(t, err, ErrTransportDisabled)
}

type slowSMS struct{}

func (slowSMS) SendSMS(ctx context.Context, _, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNotifyTimeout(t *testing.T) {
	email := &fakeEmail{}
	d := &Dispatcher{SMS: slowSMS{}, Email: email, Timeout: 20 * time.Millisecond}

	err := d.Notify(context.Background(), testItem(), RelayMessage("abc12", "hello"))
	assert.ErrorIs(t, err, ErrDispatchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, email.sent, 1)
}

func TestMessages(t *testing.T) {
	relay := RelayMessage("abc12", "I have your bag")
	assert.Equal(t, "Your item with ID abc12 has a message: I have your bag", relay.SMS)
	assert.Equal(t, "Message regarding your item with ID abc12: I have your bag", relay.Email)

	reported := ReportedMessage("abc12")
	assert.Equal(t, "Your item with ID abc12 has been reported as missing.", reported.SMS)
}

func TestDisabledSenders(t *testing.T) {
	tw := NewTwilioSender("", "", "")
	assert.False(t, tw.IsEnabled())
	assert.ErrorIs(t, tw.SendSMS(context.Background(), "+12025550172", "x"), ErrTransportDisabled)

	mg := NewMailgunSender("", "", "", "")
	assert.False(t, mg.IsEnabled())
	assert.ErrorIs(t, mg.SendEmail(context.Background(), "a@x.com", "s", "b"), ErrTransportDisabled)
}
