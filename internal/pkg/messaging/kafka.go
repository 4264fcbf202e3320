package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaBrokersRequired is returned when no brokers are configured.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when Consume has no consumer group.
	ErrKafkaGroupRequired = errors.New("messaging: kafka consumer group is required")
)

type KafkaConfig struct {
	Brokers []string
	Dialer  *kafka.Dialer
}

// Kafka consumes a topic as part of a consumer group. Messages of a reader
// are handled one at a time and committed in order; the concurrency option
// is not used.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	readers []*kafka.Reader
	closed  bool
}

func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}
	return &Kafka{brokers: append([]string{}, cfg.Brokers...), dialer: cfg.Dialer}, nil
}

func (k *Kafka) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, topic, handler); err != nil {
		return err
	}
	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrKafkaGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.track(reader); err != nil {
		return errors.Join(err, reader.Close())
	}

	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			closeErr := reader.Close()
			if ctx.Err() != nil {
				return errors.Join(ctx.Err(), closeErr)
			}
			if errors.Is(err, io.EOF) {
				return closeErr
			}
			return errors.Join(fmt.Errorf("messaging: kafka fetch: %w", err), closeErr)
		}

		dispatch(ctx, "kafka", handler, kafkaMessage(m))

		if err := reader.CommitMessages(context.WithoutCancel(ctx), m); err != nil {
			return errors.Join(fmt.Errorf("messaging: kafka commit: %w", err), reader.Close())
		}
	}
}

func kafkaMessage(m kafka.Message) Message {
	headers := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		headers[h.Key] = string(h.Value)
	}
	return Message{Topic: m.Topic, Body: m.Value, Headers: headers, ReceivedAt: m.Time}
}

func (k *Kafka) track(r *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return io.ErrClosedPipe
	}
	k.readers = append(k.readers, r)
	return nil
}

// Close closes every reader, which unblocks running Consume calls.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	readers := k.readers
	k.readers = nil
	k.mu.Unlock()

	var err error
	for _, r := range readers {
		err = errors.Join(err, r.Close())
	}
	return err
}
