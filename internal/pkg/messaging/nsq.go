package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQAddrsRequired is returned when neither nsqd nor lookupd addresses are set.
	ErrNSQAddrsRequired = errors.New("messaging: nsq nsqd or lookupd addresses are required")
	// ErrNSQChannelRequired is returned when Consume has no group to use as channel.
	ErrNSQChannelRequired = errors.New("messaging: nsq channel is required")
)

type NSQConfig struct {
	NSQDAddrs    []string
	LookupdAddrs []string
	// Config overrides the default consumer config.
	Config *nsq.Config
}

// NSQ consumes NSQ topics. The consume group is used as the NSQ channel.
type NSQ struct {
	nsqd    []string
	lookupd []string
	config  *nsq.Config

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if len(cfg.NSQDAddrs) == 0 && len(cfg.LookupdAddrs) == 0 {
		return nil, ErrNSQAddrsRequired
	}

	ncfg := cfg.Config
	if ncfg == nil {
		ncfg = nsq.NewConfig()
	}

	return &NSQ{
		nsqd:    append([]string{}, cfg.NSQDAddrs...),
		lookupd: append([]string{}, cfg.LookupdAddrs...),
		config:  ncfg,
	}, nil
}

func (n *NSQ) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, topic, handler); err != nil {
		return err
	}
	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrNSQChannelRequired
	}

	ccfg := *n.config
	if ccfg.MaxInFlight < co.concurrency {
		ccfg.MaxInFlight = co.concurrency
	}

	consumer, err := nsq.NewConsumer(topic, co.group, &ccfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	// returning nil finishes the message
	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		dispatch(ctx, "nsq", handler, Message{
			Topic:      topic,
			Body:       m.Body,
			ReceivedAt: time.Unix(0, m.Timestamp),
		})
		return nil
	}), co.concurrency)

	if err := n.track(consumer); err != nil {
		stopNSQ(consumer)
		return err
	}

	if len(n.lookupd) > 0 {
		err = consumer.ConnectToNSQLookupds(n.lookupd)
	} else {
		err = consumer.ConnectToNSQDs(n.nsqd)
	}
	if err != nil {
		stopNSQ(consumer)
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		stopNSQ(consumer)
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) track(c *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.consumers = append(n.consumers, c)
	return nil
}

func stopNSQ(c *nsq.Consumer) {
	c.Stop()
	<-c.StopChan
}

// Close stops every consumer and waits for in-flight handlers.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer{}, n.consumers...)
	n.mu.Unlock()

	for _, c := range consumers {
		stopNSQ(c)
	}
	return nil
}
