package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func testConfig() *Config {
	return &Config{
		SMTPHost:  "smtp.example.com",
		SMTPPort:  587,
		FromEmail: "news@acme.test",
		FromName:  "Acme News",
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	t.Run("builds and delivers the message", func(t *testing.T) {
		m := NewSMTPMailer(testConfig())

		var sent *mail.Msg
		m.deliver = func(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
			require.NotNil(t, client)
			sent = msg
			return nil
		}

		err := m.Send(context.Background(), Message{
			To:      "ann@example.com",
			ToName:  "Ann",
			Subject: "Acme - Industry Newsletter",
			HTML:    "<p>Hello</p>",
			Text:    "Hello",
		})
		require.NoError(t, err)
		require.NotNil(t, sent)

		recipients, err := sent.GetRecipients()
		require.NoError(t, err)
		assert.Equal(t, []string{"ann@example.com"}, recipients)

		var buf bytes.Buffer
		_, err = sent.WriteTo(&buf)
		require.NoError(t, err)
		raw := buf.String()
		assert.Contains(t, raw, "Subject: Acme - Industry Newsletter")
		assert.Contains(t, raw, "text/html")
		assert.Contains(t, raw, "text/plain")
	})

	t.Run("invalid recipient", func(t *testing.T) {
		m := NewSMTPMailer(testConfig())
		m.deliver = func(context.Context, *mail.Client, *mail.Msg) error {
			t.Fatal("should not deliver")
			return nil
		}

		err := m.Send(context.Background(), Message{To: "not-an-email", Subject: "x", HTML: "x"})
		assert.Error(t, err)
	})

	t.Run("delivery error is wrapped", func(t *testing.T) {
		m := NewSMTPMailer(testConfig())
		m.deliver = func(context.Context, *mail.Client, *mail.Msg) error {
			return errors.New("550 mailbox unavailable")
		}

		err := m.Send(context.Background(), Message{To: "ann@example.com", Subject: "x", HTML: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ann@example.com")
		assert.Contains(t, err.Error(), "550")
	})
}

func TestSMTPMailer_createSMTPClient(t *testing.T) {
	cfg := testConfig()
	cfg.SMTPUsername = "user"
	cfg.SMTPPassword = "pass"
	cfg.UseTLS = true

	client, err := NewSMTPMailer(cfg).createSMTPClient()
	require.NoError(t, err)
	assert.NotNil(t, client)

	cfg.SMTPHost = ""
	_, err = NewSMTPMailer(cfg).createSMTPClient()
	assert.Error(t, err)
}

func TestConsoleMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewConsoleMailerWithWriter(&buf)

	err := m.Send(context.Background(), Message{To: "ann@example.com", Subject: "Hi", HTML: "<p>html</p>", Text: "plain"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "To: ann@example.com")
	assert.Contains(t, buf.String(), "Subject: Hi")
	assert.Contains(t, buf.String(), "plain")
	assert.NotContains(t, buf.String(), "<p>html</p>")

	buf.Reset()
	require.NoError(t, m.Send(context.Background(), Message{To: "b@example.com", Subject: "Hi", HTML: "<p>html</p>"}))
	assert.Contains(t, buf.String(), "<p>html</p>")
}
