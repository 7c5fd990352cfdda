package mailer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is one email with an HTML body and a plain-text alternative
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends a single message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds the SMTP settings of the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	UseTLS       bool
	FromEmail    string
	FromName     string
	Timeout      time.Duration
}

// SMTPMailer implements Mailer over SMTP
type SMTPMailer struct {
	config *Config
	// deliver is replaced in tests to avoid network connections
	deliver func(ctx context.Context, client *mail.Client, msg *mail.Msg) error
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		deliver: func(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}
}

// Send builds the MIME message and delivers it through a new SMTP connection
func (m *SMTPMailer) Send(ctx context.Context, message Message) error {
	msg, err := m.buildMessage(message)
	if err != nil {
		return err
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	if err := m.deliver(ctx, client, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", message.To, err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(message Message) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}

	if message.ToName != "" {
		if err := msg.AddToFormat(message.ToName, message.To); err != nil {
			return nil, fmt.Errorf("failed to set email recipient: %w", err)
		}
	} else if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextHTML, message.HTML)
	if message.Text != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, message.Text)
	}

	return msg, nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	timeout := m.config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	policy := mail.TLSOpportunistic
	if m.config.UseTLS {
		policy = mail.TLSMandatory
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(policy),
		mail.WithTimeout(timeout),
	}

	// unauthenticated relays are allowed
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

// ConsoleMailer prints emails instead of sending them, for development
type ConsoleMailer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleMailer creates a console mailer writing to stdout
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{out: os.Stdout}
}

// NewConsoleMailerWithWriter creates a console mailer writing to w
func NewConsoleMailerWithWriter(w io.Writer) *ConsoleMailer {
	return &ConsoleMailer{out: w}
}

// Send prints the message headers and its plain-text body
func (m *ConsoleMailer) Send(_ context.Context, message Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	separator := strings.Repeat("=", 62)
	body := message.Text
	if body == "" {
		body = message.HTML
	}

	_, err := fmt.Fprintf(m.out, "%s\nTo: %s\nSubject: %s\n\n%s\n%s\n", separator, message.To, message.Subject, body, separator)
	return err
}
