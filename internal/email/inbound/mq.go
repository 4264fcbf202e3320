package inbound

import (
	"context"
	"errors"
	"log/slog"

	"github.com/banglapremium/mailrelay/internal/pkg/config"
	"github.com/banglapremium/mailrelay/internal/pkg/goroutine"
	"github.com/banglapremium/mailrelay/internal/pkg/instrument"
	"github.com/banglapremium/mailrelay/internal/pkg/messaging"
	"github.com/banglapremium/mailrelay/internal/pkg/uid"
)

// RegisterMQConsumer starts a worker that feeds messaging.topic into SendEmail.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) error {
	handler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	topic := cfg.GetString("messaging.topic")
	group := cfg.GetString("messaging.consumer_group")
	concurrency := cfg.GetInt("messaging.concurrency")

	return routine.Go(ctx, "email-consumer", func(ctx context.Context) error {
		slog.InfoContext(ctx, "running email consumer", "topic", topic, "group", group, "concurrency", concurrency)

		err := consumer.Consume(ctx, topic, handler.SendEmail,
			messaging.WithGroup(group),
			messaging.WithConcurrency(concurrency),
		)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
}
