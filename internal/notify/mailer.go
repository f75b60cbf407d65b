package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer delivers a single message to a single address.
type Mailer interface {
	Send(ctx context.Context, to string, msg Message) error
}

// SMTPMailer delivers messages through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer creates an SMTPMailer for the given relay. Credentials are
// optional; when username is empty the connection is unauthenticated, which
// suits local development relays.
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(port)}

	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to string, msg Message) error {
	message := mail.NewMsg()

	if err := message.From(m.from); err != nil {
		return fmt.Errorf("set sender %s: %w", m.from, err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("set recipient %s: %w", to, err)
	}

	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	return nil
}
