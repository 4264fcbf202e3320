package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/banglapremium/mailrelay/internal/email/entity"
	"github.com/banglapremium/mailrelay/internal/pkg/goerror"
	"github.com/banglapremium/mailrelay/internal/pkg/idempotency"
	"github.com/banglapremium/mailrelay/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type SendEmailInput struct {
	To      string
	Subject string
	Type    string
	Data    json.RawMessage
	// IdempotencyKey deduplicates retries of the same request when set.
	IdempotencyKey string
}

// SendEmail renders the template named by in.Type with in.Data and sends it.
func (s *Usecase) SendEmail(ctx context.Context, in SendEmailInput) (err error) {
	ctx, span := s.startSpan(ctx, "SendEmail")
	defer span.End()

	span.SetAttributes(attribute.String("email.type", in.Type))
	defer func() {
		s.record(ctx, in.Type, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	tag, ok := entity.ParseTypeTag(in.Type)
	if !ok {
		slog.WarnContext(ctx, "unknown email type", "type", in.Type)
		return entity.ErrInvalidEmailType
	}

	tpl, ok := s.templates.Lookup(tag)
	if !ok {
		slog.ErrorContext(ctx, "email type has no template", "type", tag.String())
		return entity.ErrInvalidEmailType
	}

	props := tpl.NewProps()
	if err := decodeData(in.Data, props); err != nil {
		slog.WarnContext(ctx, "failed to decode email data", "type", tag.String(), "error", err)
		return goerror.NewInvalidInput(entity.MsgInvalidEmailData, nil, "data", "data does not match the "+tag.String()+" payload")
	}

	if err := s.validator.Validate(props); err != nil {
		slog.WarnContext(ctx, "invalid email data", "type", tag.String(), "error", err)
		return goerror.NewInvalidInput(entity.MsgInvalidEmailData, err)
	}

	body, err := s.renderer.Render(tpl.Build(props))
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email", "type", tag.String(), "error", err)
		return entity.ErrSendFailed(err)
	}

	msg := mail.Message{
		To:      mail.SplitAddresses(in.To),
		Subject: in.Subject,
		HTML:    body,
	}

	if err := s.deliver(ctx, in.IdempotencyKey, msg); err != nil {
		return err
	}

	slog.InfoContext(ctx, "email sent", "type", tag.String(), "to", in.To)
	return nil
}

func (s *Usecase) deliver(ctx context.Context, key string, msg mail.Message) error {
	if s.idempotency == nil || key == "" {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to send email", "to", msg.To, "error", err)
			return entity.ErrSendFailed(err)
		}
		return nil
	}

	sent := false
	err := s.idempotency.Exec(ctx, key, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return err
		}
		sent = true
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		slog.InfoContext(ctx, "email already sent for idempotency key", "idempotency_key", key)
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "email request already in progress", "idempotency_key", key)
		return entity.ErrInProgress
	case sent:
		// the message went out; only recording completion failed
		slog.WarnContext(ctx, "failed to mark idempotency key completed", "idempotency_key", key, "error", err)
		return nil
	default:
		slog.ErrorContext(ctx, "failed to send email", "to", msg.To, "idempotency_key", key, "error", err)
		return entity.ErrSendFailed(err)
	}
}

func (s *Usecase) record(ctx context.Context, typ string, err error) {
	if s.sent == nil {
		return
	}

	outcome := "sent"
	var gerr *goerror.Error
	if err != nil {
		outcome = "failed"
		if errors.As(err, &gerr) && gerr.Type() == goerror.TypeValidation {
			outcome = "rejected"
		}
	}

	if _, ok := entity.ParseTypeTag(typ); !ok {
		typ = "unknown"
	}

	s.sent.Add(ctx, 1, metric.WithAttributes(
		attribute.String("email.type", typ),
		attribute.String("outcome", outcome),
	))
}

// decodeData fills props from raw. Absent or null data leaves props empty so
// validation reports the missing fields.
func decodeData(raw json.RawMessage, props any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, props)
}
