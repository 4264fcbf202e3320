package inbound

import (
	"github.com/banglapremium/mailrelay/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/", end.Root)
	r.GET("/health", end.Health)
	r.POST("/send-email", end.SendEmail)
}
