package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/sickfits/internal/config"
)

type fakeSES struct {
	in  *sesv2.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestResetLink(t *testing.T) {
	assert.Equal(t,
		"http://localhost:7777/reset?resetToken=abc123",
		ResetLink("http://localhost:7777", "abc123"),
	)
}

func TestPasswordResetMessage(t *testing.T) {
	msg, err := PasswordReset("wes@example.com", "<Wes>", "http://x/reset?resetToken=t")
	require.NoError(t, err)

	assert.Equal(t, "wes@example.com", msg.To)
	assert.Equal(t, "Your Password Reset Token", msg.Subject)
	assert.Contains(t, msg.HTML, `href="http://x/reset?resetToken=t"`)
	assert.Contains(t, msg.HTML, "&lt;Wes&gt;", "name must be escaped")
	assert.Contains(t, msg.HTML, `<div class="email"`)
	assert.NotContains(t, msg.HTML, "className")
	assert.Contains(t, msg.Text, "http://x/reset?resetToken=t")
}

func TestSESMailerSend(t *testing.T) {
	fake := &fakeSES{}
	m := newSESMailer(fake, "Sick Fits", "shop@example.com")

	err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi", HTML: "<p>x</p>", Text: "x"})
	require.NoError(t, err)

	require.NotNil(t, fake.in)
	assert.Equal(t, "Sick Fits <shop@example.com>", aws.ToString(fake.in.FromEmailAddress))
	assert.Equal(t, []string{"a@example.com"}, fake.in.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(fake.in.Content.Simple.Subject.Data))
}

func TestSESMailerSendError(t *testing.T) {
	m := newSESMailer(&fakeSES{err: errors.New("throttled")}, "", "shop@example.com")

	err := m.Send(context.Background(), Message{To: "a@example.com"})
	assert.ErrorContains(t, err, "throttled")
}

func TestNewDisabled(t *testing.T) {
	m, err := New(context.Background(), config.Mail{})
	require.NoError(t, err)
	assert.IsType(t, LogMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), Message{To: "x@example.com"}))
}
