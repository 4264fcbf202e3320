package mail

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrNoRecipients is returned when Message.To is empty.
	ErrNoRecipients = errors.New("mail: no recipients provided")
	// ErrNoSender is returned when neither Message.From nor the default sender is set.
	ErrNoSender = errors.New("mail: no sender provided")
)

// Message is a single HTML email.
type Message struct {
	// From falls back to the transport's default sender when empty.
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mail sends messages through one delivery provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// SplitAddresses turns a comma separated recipient list into addresses,
// dropping empty entries.
func SplitAddresses(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(a string, _ int) string {
		return strings.TrimSpace(a)
	}))
}

func sender(msg Message, fallback string) (string, error) {
	if msg.From != "" {
		return msg.From, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoSender
}
