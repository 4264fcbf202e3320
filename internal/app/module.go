package app

import (
	"log/slog"
	"os"

	"github.com/banglapremium/mailrelay/internal/email"
)

func (a *App) initModules() {
	dep := email.Dependency{
		Config:     a.config,
		Instrument: a.ins,
		UUID:       a.uuid,
		Goroutine:  a.goroutine,
		Validator:  a.validator,
		Router:     a.router,
		Mail:       a.mail,
	}
	if a.idemp != nil {
		dep.Idempotency = a.idemp
	}
	if a.consumer != nil {
		dep.Ctx = a.ctx
		dep.Consumer = a.consumer
	}

	if err := email.New(dep); err != nil {
		slog.Error("failed to init module email", "error", err)
		os.Exit(1)
	}
}
