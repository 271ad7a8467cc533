package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	channel string
	err     error
	block   chan struct{}

	mu   sync.Mutex
	sent []models.InsertContactMessage
}

func (n *recordingNotifier) Channel() string { return n.channel }

func (n *recordingNotifier) Notify(ctx context.Context, message models.InsertContactMessage) error {
	if n.block != nil {
		select {
		case <-n.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, message)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

var testMessage = models.InsertContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello"}

func TestDispatcherDeliversToEveryChannelDespiteFailures(t *testing.T) {
	failing := &recordingNotifier{channel: "email", err: errors.New("smtp down")}
	working := &recordingNotifier{channel: "sms"}
	d := NewDispatcher(time.Second, failing, working)

	d.Dispatch(testMessage)
	require.NoError(t, d.Wait(context.Background()))

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, working.count())
}

func TestDispatchDoesNotBlockCaller(t *testing.T) {
	slow := &recordingNotifier{channel: "email", block: make(chan struct{})}
	d := NewDispatcher(time.Minute, slow)

	returned := make(chan struct{})
	go func() {
		d.Dispatch(testMessage)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on the notifier")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(slow.block)
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, 1, slow.count())
}

func TestDispatcherAppliesTimeout(t *testing.T) {
	stuck := &recordingNotifier{channel: "email", block: make(chan struct{})}
	d := NewDispatcher(10*time.Millisecond, stuck)

	d.Dispatch(testMessage)
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, 0, stuck.count())
}

func TestDispatcherWithoutChannelsIsDisabled(t *testing.T) {
	d := NewDispatcher(time.Second)
	assert.False(t, d.Enabled())
	d.Dispatch(testMessage)
	assert.NoError(t, d.Wait(context.Background()))

	var nilDispatcher *Dispatcher
	assert.False(t, nilDispatcher.Enabled())
	nilDispatcher.Dispatch(testMessage)
	assert.NoError(t, nilDispatcher.Wait(context.Background()))
}

func TestNotifiersFromConfig(t *testing.T) {
	notifiers, err := NotifiersFromConfig(map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, notifiers)

	notifiers, err = NotifiersFromConfig(map[string]string{
		"RESEND_API_KEY":       "re_123",
		"RESEND_FROM_EMAIL":    "Portfolio <hi@example.com>",
		"CONTACT_NOTIFY_EMAIL": "me@example.com",
		"TWILIO_ACCOUNT_SID":   "AC123",
		"TWILIO_AUTH_TOKEN":    "token",
		"TWILIO_FROM_NUMBER":   "+15550000000",
		"CONTACT_NOTIFY_PHONE": "+15551111111",
	})
	require.NoError(t, err)
	require.Len(t, notifiers, 2)
	assert.Equal(t, "email", notifiers[0].Channel())
	assert.Equal(t, "sms", notifiers[1].Channel())
}

func TestNotifiersFromConfigRejectsPartialCredentials(t *testing.T) {
	_, err := NotifiersFromConfig(map[string]string{"RESEND_API_KEY": "re_123"})
	assert.ErrorIs(t, err, errs.ErrConfigMissing)

	_, err = NotifiersFromConfig(map[string]string{"TWILIO_ACCOUNT_SID": "AC123"})
	assert.ErrorIs(t, err, errs.ErrConfigMissing)
}
