package messaging

type consumeOptions struct {
	// concurrency is the number of handlers running in parallel.
	concurrency int
	// group is the NATS queue group, the NSQ channel and the Kafka consumer group.
	group string
}

// ConsumeOption configures a Consume call.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	if co.concurrency < 1 {
		co.concurrency = 1
	}
	return co
}

// WithConcurrency sets how many messages are handled in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup makes instances sharing the name split the topic's messages.
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}
