package mail

import (
	"context"
	"log/slog"
)

// Log records messages instead of sending them. Use it for local development.
type Log struct {
	from string
}

func NewLog(from string) *Log {
	return &Log{from: from}
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	from, err := sender(msg, l.from)
	if err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	slog.InfoContext(ctx, "mail not delivered, log driver active",
		"from", from,
		"to", msg.To,
		"subject", msg.Subject,
		"html_bytes", len(msg.HTML),
	)
	return nil
}

func (l *Log) Close() error {
	return nil
}
