package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestMulti(t *testing.T) {
	ok := NotifierFunc(func(ctx context.Context, msg Message) error { return nil })
	skip := NotifierFunc(func(ctx context.Context, msg Message) error { return ErrSkipped })
	boom := NotifierFunc(func(ctx context.Context, msg Message) error { return errors.New("smtp down") })

	ctx := context.Background()

	assert.ErrorIs(t, Multi{}.Notify(ctx, Message{}), ErrSkipped)
	assert.ErrorIs(t, Multi{skip, skip}.Notify(ctx, Message{}), ErrSkipped)
	assert.NoError(t, Multi{skip, ok}.Notify(ctx, Message{}))

	err := Multi{ok, boom}.Notify(ctx, Message{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.NotErrorIs(t, err, ErrSkipped)
}

func TestMailer_SkipsWithoutEmail(t *testing.T) {
	m := NewMailer("smtp.example.com", 587, "", "", "noreply@example.com")
	assert.ErrorIs(t, m.Notify(context.Background(), Message{Phone: "+15550100"}), ErrSkipped)
}

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
	err    error
	delay  time.Duration
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	time.Sleep(f.delay)
	f.params = params
	return &twilioApi.ApiV2010Message{}, f.err
}

func TestSMS_Notify(t *testing.T) {
	t.Run("no phone", func(t *testing.T) {
		s := &SMS{api: &fakeMessages{}, from: "+15550000"}
		assert.ErrorIs(t, s.Notify(context.Background(), Message{Email: "a@example.com"}), ErrSkipped)
	})

	t.Run("sends", func(t *testing.T) {
		api := &fakeMessages{}
		s := &SMS{api: api, from: "+15550000"}

		err := s.Notify(context.Background(), Message{Phone: "+15550100", Subject: "Booking Confirmed", Body: "See you"})
		require.NoError(t, err)
		require.NotNil(t, api.params)
		assert.Equal(t, "+15550100", *api.params.To)
		assert.Equal(t, "+15550000", *api.params.From)
		assert.Equal(t, "Booking Confirmed: See you", *api.params.Body)
	})

	t.Run("provider error", func(t *testing.T) {
		s := &SMS{api: &fakeMessages{err: errors.New("invalid number")}, from: "+15550000"}
		assert.Error(t, s.Notify(context.Background(), Message{Phone: "+1"}))
	})

	t.Run("deadline", func(t *testing.T) {
		s := &SMS{api: &fakeMessages{delay: 200 * time.Millisecond}, from: "+15550000"}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := s.Notify(ctx, Message{Phone: "+15550100"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
