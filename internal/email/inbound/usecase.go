package inbound

import (
	"context"

	"github.com/banglapremium/mailrelay/internal/email/usecase"
)

type uc interface {
	SendEmail(ctx context.Context, in usecase.SendEmailInput) error
}
