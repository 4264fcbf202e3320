package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DriverNATS  = "nats"
	DriverNSQ   = "nsq"
	DriverKafka = "kafka"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions groups config for every supported backend.
type FactoryOptions struct {
	NATS  NATSConfig
	NSQ   NSQConfig
	Kafka KafkaConfig
}

// NewFromDriver constructs the Consumer named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Consumer, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverNATS:
		return asConsumer(NewNATS(opts.NATS))
	case DriverNSQ:
		return asConsumer(NewNSQ(opts.NSQ))
	case DriverKafka:
		return asConsumer(NewKafka(opts.Kafka))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

// asConsumer keeps a failed constructor from yielding a typed-nil interface.
func asConsumer[T Consumer](c T, err error) (Consumer, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
