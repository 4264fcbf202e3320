package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ErrResendAPIKeyRequired is returned when the Resend driver has no API key.
var ErrResendAPIKeyRequired = errors.New("mail: resend api key is required")

// ResendConfig configures the Resend HTTP API transport.
type ResendConfig struct {
	APIKey string
	From   string
}

// Resend sends mail through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
}

func NewResend(cfg ResendConfig) (*Resend, error) {
	if cfg.APIKey == "" {
		return nil, ErrResendAPIKeyRequired
	}

	return &Resend{client: resend.NewClient(cfg.APIKey), from: cfg.From}, nil
}

func (r *Resend) Send(ctx context.Context, msg Message) error {
	from, err := sender(msg, r.from)
	if err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	_, err = r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}

func (r *Resend) Close() error {
	return nil
}
