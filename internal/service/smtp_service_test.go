package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/newsletter/pkg/mailer"
)

type failingMailer struct{}

func (failingMailer) Send(context.Context, mailer.Message) error {
	return errors.New("535 authentication failed")
}

func TestMailerProvider_Send(t *testing.T) {
	t.Run("console mailer prints the message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		var out bytes.Buffer
		provider := NewMailerProvider("console", mailer.NewConsoleMailerWithWriter(&out), newMockLogger(ctrl))

		assert.Equal(t, "console", provider.Name())
		require.NoError(t, provider.Send(context.Background(), testEmail))
		assert.Contains(t, out.String(), "jane@example.com")
		assert.Contains(t, out.String(), "Acme - Industry Newsletter")
	})

	t.Run("mailer error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := NewMailerProvider("smtp", failingMailer{}, newMockLogger(ctrl))

		err := provider.Send(context.Background(), testEmail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed")
	})

	t.Run("invalid message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := NewMailerProvider("smtp", failingMailer{}, newMockLogger(ctrl))

		msg := testEmail
		msg.Subject = " "
		err := provider.Send(context.Background(), msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subject")
	})
}
