package errs

import (
	"errors"
	"fmt"
)

// Third-Party API Errors
var (
	ErrNotificationFailed = errors.New("notification failed")
	ErrConfigMissing      = errors.New("configuration missing")
)

// NotificationError reports a failed best-effort notification. It is only
// ever logged.
type NotificationError struct {
	Channel string
	Err     error
}

func NewNotificationError(channel string, cause error) *NotificationError {
	return &NotificationError{Channel: channel, Err: cause}
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Channel, ErrNotificationFailed, e.Err)
}

func (e *NotificationError) Unwrap() []error {
	return []error{ErrNotificationFailed, e.Err}
}

func IsNotificationError(err error) bool {
	return errors.Is(err, ErrNotificationFailed)
}

func NewConfigMissingError(key string) error {
	return fmt.Errorf("%w: %s", ErrConfigMissing, key)
}
