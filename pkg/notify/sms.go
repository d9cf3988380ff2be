package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMS sends text confirmations through Twilio.
type SMS struct {
	api  messageCreator
	from string
}

func NewSMS(accountSID, authToken, from string) *SMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMS{api: client.Api, from: from}
}

func (s *SMS) Notify(ctx context.Context, msg Message) error {
	if msg.Phone == "" {
		return ErrSkipped
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.Phone)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("%s: %s", msg.Subject, msg.Body))

	// the twilio client takes no context; run it aside so the deadline still applies
	done := make(chan error, 1)
	go func() {
		_, err := s.api.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send sms to %s: %w", msg.Phone, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send sms to %s: %w", msg.Phone, ctx.Err())
	}
}
