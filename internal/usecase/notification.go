package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"home-services/internal/data/entity"
	"home-services/pkg/metrics"
	"home-services/pkg/notify"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultNotifyTimeout = 10 * time.Second
	defaultRecipientName = "Customer"
	confirmationSubject  = "Booking Confirmed"
)

// NotificationResult is the outcome of a confirmation attempt. It is logged
// and counted by the caller and never turned into an API error.
type NotificationResult struct {
	Attempted bool
	Recipient string
	Err       error
}

func (r NotificationResult) Outcome() string {
	switch {
	case !r.Attempted:
		return "skipped"
	case r.Err != nil:
		return "failed"
	default:
		return "sent"
	}
}

// confirmationMessage addresses the stored account when the booking has
// one and the guest otherwise.
func confirmationMessage(booking *entity.Booking, service *entity.Service, customer *entity.User, loc *time.Location) (notify.Message, bool) {
	var msg notify.Message
	switch {
	case customer != nil:
		msg.Name = customer.Name
		msg.Email = customer.Email
		msg.Phone = utils.Deref(customer.Phone)
	case booking.Guest != nil:
		msg.Name = booking.Guest.Name
		msg.Email = booking.Guest.Email
		msg.Phone = utils.Deref(booking.Guest.Phone)
	}

	if msg.Email == "" && msg.Phone == "" {
		return msg, false
	}
	if strings.TrimSpace(msg.Name) == "" {
		msg.Name = defaultRecipientName
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Your booking for %s on %s has been received.",
		service.Title, utils.FormatSchedule(booking.ScheduledAt, loc))
	if booking.Address != "" {
		fmt.Fprintf(&body, "\nAddress: %s", booking.Address)
	}

	msg.Subject = confirmationSubject
	msg.Body = body.String()
	return msg, true
}

// attemptConfirmation sends the booking confirmation within a bounded time.
// The request being cancelled does not cut the attempt short, the booking is
// already stored by then.
func (s *bookingService) attemptConfirmation(ctx context.Context, booking *entity.Booking, service *entity.Service, customer *entity.User) (result NotificationResult) {
	msg, ok := confirmationMessage(booking, service, customer, s.config.App.Timezone)
	if !ok || s.notifier == nil {
		return NotificationResult{}
	}

	timeout := s.config.Notify.Timeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	result = NotificationResult{Attempted: true, Recipient: msg.Email}
	if result.Recipient == "" {
		result.Recipient = msg.Phone
	}

	defer func() {
		if p := recover(); p != nil {
			result.Err = fmt.Errorf("notifier panicked: %v", p)
		}
	}()

	err := s.notifier.Notify(ctx, msg)
	if errors.Is(err, notify.ErrSkipped) {
		return NotificationResult{Recipient: result.Recipient}
	}
	result.Err = err
	return result
}

func (s *bookingService) recordConfirmation(bookingID string, result NotificationResult) {
	metrics.RecordNotification(result.Outcome())

	fields := []zap.Field{
		zap.String("booking_id", bookingID),
		zap.String("recipient", result.Recipient),
		zap.String("outcome", result.Outcome()),
	}
	switch {
	case result.Err != nil:
		s.log.Warn("Booking confirmation failed", append(fields, zap.Error(result.Err))...)
	case result.Attempted:
		s.log.Info("Booking confirmation sent", fields...)
	default:
		s.log.Debug("Booking confirmation skipped", fields...)
	}
}
