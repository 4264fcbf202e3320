package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

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
	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initCache() {
	if !a.config.GetBool("idempotency.enabled") {
		return
	}

	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(rdb, idempotency.Options{
		LockDuration: a.config.GetSecond("idempotency.lock_seconds"),
		CompletedTTL: a.config.GetSecond("idempotency.ttl_seconds"),
		Prefix:       a.config.GetString("app.name") + ":idempotency:",
	})
}

func (a *App) initMail() {
	driver := a.config.GetString("mail.driver")
	m, err := mail.NewFromDriver(mail.Config{
		Driver: driver,
		From:   a.config.GetString("mail.from"),
		SMTP: mail.SMTPConfig{
			Host:      a.config.GetString("mail.smtp.host"),
			Port:      a.config.GetInt("mail.smtp.port"),
			Secure:    a.config.GetString("mail.smtp.secure"),
			Username:  a.config.GetString("mail.smtp.username"),
			Password:  a.config.GetString("mail.smtp.password"),
			Timeout:   a.config.GetSecond("mail.smtp.timeout_seconds"),
			MessageID: a.uuid,
			Clock:     a.clock,
		},
		Resend: mail.ResendConfig{
			APIKey: a.config.GetString("mail.resend.api_key"),
		},
	})
	if err != nil {
		slog.Error("failed to init mail", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.mail = m
}

func (a *App) initMessaging() {
	if !a.config.GetBool("messaging.enabled") {
		return
	}

	driver := a.config.GetString("messaging.driver")
	consumer, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
		NATS: messaging.NATSConfig{
			URL: a.config.GetString("messaging.nats.url"),
			Options: []nats.Option{
				nats.Name(a.config.GetString("app.name")),
				nats.MaxReconnects(-1),
				nats.RetryOnFailedConnect(true),
			},
		},
		NSQ: messaging.NSQConfig{
			NSQDAddrs:    a.config.GetArray("messaging.nsq.nsqd_addrs"),
			LookupdAddrs: a.config.GetArray("messaging.nsq.lookupd_addrs"),
			Config: func() *nsq.Config {
				cfg := nsq.NewConfig()
				cfg.MaxInFlight = max(a.config.GetInt("messaging.concurrency"), 1)
				return cfg
			}(),
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.config.GetArray("messaging.kafka.brokers"),
		},
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.consumer = consumer
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	var handler http.Handler = a.router
	if origins := a.config.GetArray("app.server.cors"); len(origins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}).Handler(a.router)
	}

	a.httpServer = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(a.config.GetInt("app.server.http.port"))),
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []closer{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				if a.consumer == nil {
					return nil
				}
				return a.consumer.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn == nil {
					return nil
				}
				return a.cacheConn.Close()
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
