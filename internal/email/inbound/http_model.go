package inbound

import (
	"encoding/json"

	"github.com/banglapremium/mailrelay/internal/email/entity"
)

const headerIdempotencyKey = "Idempotency-Key"

type SendEmailRequest struct {
	To      string           `json:"to"`
	Subject string           `json:"subject"`
	Type    entity.TypeField `json:"type"`
	Data    json.RawMessage  `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
