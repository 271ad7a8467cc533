package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Notifier delivers a courtesy notification about a saved contact message.
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, message models.InsertContactMessage) error
}

// NotifiersFromConfig builds every channel whose credentials are present.
// A channel with no credentials at all is skipped; one with only some of
// them is reported as an error.
func NotifiersFromConfig(c map[string]string) ([]Notifier, error) {
	var notifiers []Notifier

	if config.GetString(c, "RESEND_API_KEY", "") != "" {
		email, err := NewResendNotifier(
			config.GetString(c, "RESEND_API_KEY", ""),
			config.GetString(c, "RESEND_FROM_EMAIL", ""),
			config.GetList(c, "CONTACT_NOTIFY_EMAIL"),
		)
		if err != nil {
			return nil, fmt.Errorf("email notifier: %w", err)
		}
		notifiers = append(notifiers, email)
	}

	if config.GetString(c, "TWILIO_ACCOUNT_SID", "") != "" {
		sms, err := NewTwilioNotifier(
			config.GetString(c, "TWILIO_ACCOUNT_SID", ""),
			config.GetString(c, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(c, "TWILIO_FROM_NUMBER", ""),
			config.GetString(c, "CONTACT_NOTIFY_PHONE", ""),
		)
		if err != nil {
			return nil, fmt.Errorf("sms notifier: %w", err)
		}
		notifiers = append(notifiers, sms)
	}

	return notifiers, nil
}

// Dispatcher sends notifications in the background. A send never blocks the
// caller and its failure is logged and dropped.
type Dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	logger    zerolog.Logger
	wg        sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		timeout:   timeout,
		logger:    log.With().Str("component", "notificationDispatcher").Logger(),
	}
}

// Enabled reports whether any channel is configured.
func (d *Dispatcher) Enabled() bool {
	return d != nil && len(d.notifiers) > 0
}

// Dispatch starts delivery of message on every channel and returns
// immediately.
func (d *Dispatcher) Dispatch(message models.InsertContactMessage) {
	if !d.Enabled() {
		return
	}

	jobID := uuid.NewString()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(jobID, message)
	}()
}

func (d *Dispatcher) run(jobID string, message models.InsertContactMessage) {
	logger := d.logger.With().Str("jobId", jobID).Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Notification panicked")
		}
	}()

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	for _, n := range d.notifiers {
		if err := n.Notify(ctx, message); err != nil {
			logger.Error().Err(errs.NewNotificationError(n.Channel(), err)).Str("channel", n.Channel()).Msg("Contact notification failed")
			continue
		}
		logger.Debug().Str("channel", n.Channel()).Msg("Contact notification sent")
	}
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
