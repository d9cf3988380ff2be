// Package notify delivers booking confirmations over email and SMS.
package notify

import (
	"context"
	"errors"
)

// ErrSkipped means no channel had an address for the recipient.
var ErrSkipped = errors.New("no delivery channel for recipient")

// Message is one confirmation addressed to a single recipient. Channels use
// the address they understand and skip the rest.
type Message struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi sends a message over every channel. It returns ErrSkipped when
// all channels skipped, and the joined failures otherwise.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var (
		errs      []error
		delivered bool
	)
	for _, n := range m {
		err := n.Notify(ctx, msg)
		switch {
		case err == nil:
			delivered = true
		case errors.Is(err, ErrSkipped):
		default:
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if !delivered {
		return ErrSkipped
	}
	return nil
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Notify(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
