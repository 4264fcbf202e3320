// Package messaging consumes messages from a broker topic and hands each one
// to a Handler.
//
// NATS, NSQ and Kafka are supported. Delivery is at most once from the
// handler's point of view: every message is acknowledged after the handler
// returns, whatever the outcome, and handler errors are only logged.
package messaging
