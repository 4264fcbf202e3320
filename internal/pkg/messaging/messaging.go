package messaging

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

var (
	// ErrTopicRequired is returned when Consume is called without a topic.
	ErrTopicRequired = errors.New("messaging: topic is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Consumer delivers messages from a topic to a handler until ctx is done.
type Consumer interface {
	io.Closer
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one message. A returned error is logged, never retried.
type Handler func(ctx context.Context, msg Message) error

// Message is a received broker message.
type Message struct {
	Topic      string
	Body       []byte
	Headers    map[string]string
	ReceivedAt time.Time
}

// Header returns the value of the named header, matched case-insensitively.
func (m Message) Header(key string) string {
	if v, ok := m.Headers[key]; ok {
		return v
	}
	for k, v := range m.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func validateConsume(ctx context.Context, topic string, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	return nil
}
