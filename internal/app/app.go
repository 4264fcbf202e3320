package app

import (
	"context"
	"net/http"

	"github.com/banglapremium/mailrelay/internal/pkg/clock"
	"github.com/banglapremium/mailrelay/internal/pkg/config"
	"github.com/banglapremium/mailrelay/internal/pkg/goroutine"
	"github.com/banglapremium/mailrelay/internal/pkg/idempotency"
	"github.com/banglapremium/mailrelay/internal/pkg/instrument"
	"github.com/banglapremium/mailrelay/internal/pkg/mail"
	"github.com/banglapremium/mailrelay/internal/pkg/messaging"
	"github.com/banglapremium/mailrelay/internal/pkg/router"
	"github.com/banglapremium/mailrelay/internal/pkg/uid"
	"github.com/banglapremium/mailrelay/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	// resources, optional ones stay nil when disabled
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	consumer  messaging.Consumer

	// server
	router     *router.Router
	httpServer *http.Server

	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
