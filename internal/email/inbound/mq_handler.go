package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/banglapremium/mailrelay/internal/email/entity"
	"github.com/banglapremium/mailrelay/internal/email/usecase"
	"github.com/banglapremium/mailrelay/internal/pkg/instrument"
	"github.com/banglapremium/mailrelay/internal/pkg/messaging"
	"github.com/banglapremium/mailrelay/internal/pkg/router"
	"github.com/banglapremium/mailrelay/internal/pkg/uid"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cid := router.NormalizeCorrelationID(msg.Header(keyOfCorrelationID)); cid != "" {
		return instrument.SetCorrelationID(ctx, cid)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// SendEmail handles one queued EmailRequest. Every outcome is terminal: the
// message is acknowledged whether or not the send succeeded.
func (h *MQHandler) SendEmail(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("email.inbound.mq").Start(ctx, "SendEmail")
	defer span.End()

	slog.InfoContext(ctx, "consume: send email", "topic", msg.Topic, "msg_body", string(msg.Body))

	var payload entity.EmailRequest
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of send email", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	return h.uc.SendEmail(ctx, usecase.SendEmailInput{
		To:             payload.To,
		Subject:        payload.Subject,
		Type:           string(payload.Type),
		Data:           payload.Data,
		IdempotencyKey: strings.TrimSpace(msg.Header(headerIdempotencyKey)),
	})
}
