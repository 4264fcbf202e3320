package inbound

import (
	"strings"

	"github.com/banglapremium/mailrelay/internal/email/usecase"
	"github.com/banglapremium/mailrelay/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// SendEmail renders one of the fixed templates and relays it.
//
//	POST /send-email {"to","subject","type","data"}
//	200 {"message":"Email sent successfully"}
//	400 {"error":"Invalid email type"} or {"error":"Invalid request body"}
//	409 {"error":"Email request already in progress"}
//	422 {"error":"Invalid email data","fields":{...}}
//	500 {"error":"Failed to send email"}
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	var req SendEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SendEmail(r.Context(), usecase.SendEmailInput{
		To:             req.To,
		Subject:        req.Subject,
		Type:           string(req.Type),
		Data:           req.Data,
		IdempotencyKey: strings.TrimSpace(r.Header.Get(headerIdempotencyKey)),
	}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "Email sent successfully"}, nil
}

func (h *HTTPEndpoint) Health(*router.Request) (any, error) {
	return MessageResponse{Message: "ok"}, nil
}

func (h *HTTPEndpoint) Root(*router.Request) (any, error) {
	return MessageResponse{Message: "Email handler service"}, nil
}
