package messaging

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/banglapremium/mailrelay/internal/pkg/stacktrace"
)

// dispatch runs handler for msg, logging its error or panic. Callers ack the
// message afterwards regardless.
func dispatch(ctx context.Context, driver string, handler Handler, msg Message) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in messaging handler",
				"driver", driver,
				"topic", msg.Topic,
				"panic", rvr,
				"stack", stacktrace.InternalPaths(debug.Stack()),
			)
		}
	}()

	if err := handler(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "messaging handler failed, message dropped",
			"driver", driver,
			"topic", msg.Topic,
			"error", err,
		)
	}
}
