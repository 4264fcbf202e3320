package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// legacyEnv maps config keys to the environment names deployments already use.
// The upper-snake form of every key (MAIL_SMTP_HOST, ...) is accepted as well.
var legacyEnv = map[string]string{
	"mail.smtp.host":           "EMAIL_SERVER_HOST",
	"mail.smtp.port":           "EMAIL_SERVER_PORT",
	"mail.smtp.secure":         "SMTP_SECURE",
	"mail.smtp.username":       "EMAIL_SERVER_USER",
	"mail.smtp.password":       "EMAIL_SERVER_PASSWORD",
	"mail.from":                "EMAIL_FROM",
	"app.server.http.port":     "PORT",
	"mail.resend.api_key":      "RESEND_API_KEY",
	"redis.url":                "REDIS_URL",
	"instrument.otlp_endpoint": "OTEL_EXPORTER_OTLP_ENDPOINT",
}

// DotEnvPaths lists the .env files read before the environment is consulted.
var DotEnvPaths = []string{".env", "../.env"}

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from environment variables, .env files and an
// optional config file, and returns a Viper-backed Config.
//
// A missing file at pathFile is not an error; env and defaults still apply.
// The config file type is inferred by Viper from the filename extension.
func NewViper(pathFile string) (*Viper, error) {
	if err := LoadDotEnv(DotEnvPaths...); err != nil {
		return nil, err
	}

	v := newViper()
	if pathFile == "" {
		return &Viper{v: v}, nil
	}

	filename := path.Base(pathFile)
	configName := filename[:len(filename)-len(path.Ext(filename))]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		slog.Info("config file not found, using environment only", "path", pathFile)
		return &Viper{v: v}, nil
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config success reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
// Defaults and environment bindings apply exactly as with NewViper.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// LoadDotEnv loads each existing .env file into the process environment.
// Variables already present in the environment are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Info("loaded env file", "path", p)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		//nolint:errcheck // BindEnv only fails on an empty key
		v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy)
	}

	setDefaults(v)

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "email-handler")
	v.SetDefault("app.server.http.port", 4000)
	v.SetDefault("app.server.http.read_timeout_seconds", 15)
	v.SetDefault("app.server.http.read_header_timeout_seconds", 5)
	v.SetDefault("app.server.http.write_timeout_seconds", 150)
	v.SetDefault("app.server.http.idle_timeout_seconds", 60)
	v.SetDefault("app.server.max_goroutine", 16)
	v.SetDefault("app.server.cors", "")
	v.SetDefault("app.maintenance.endpoints", "")

	v.SetDefault("instrument.enabled", false)
	v.SetDefault("instrument.service_name", "email-handler")
	v.SetDefault("instrument.service_version", "1.0.0")
	v.SetDefault("instrument.env", "development")
	v.SetDefault("instrument.otlp_endpoint", "localhost:4317")
	v.SetDefault("instrument.otlp_secure", false)
	v.SetDefault("instrument.trace_sample_ratio", 1.0)
	v.SetDefault("instrument.metric_interval_seconds", 15)
	v.SetDefault("instrument.log_mask_fields", "password,authorization,api_key,resetLink")

	v.SetDefault("mail.driver", "smtp")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.smtp.secure", "")
	v.SetDefault("mail.smtp.timeout_seconds", 120)

	v.SetDefault("templates.broadcast.sanitize", false)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("idempotency.enabled", false)
	v.SetDefault("idempotency.lock_seconds", 60)
	v.SetDefault("idempotency.ttl_seconds", 86400)

	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.driver", "nats")
	v.SetDefault("messaging.topic", "email.send")
	v.SetDefault("messaging.consumer_group", "email-handler")
	v.SetDefault("messaging.concurrency", 4)
	v.SetDefault("messaging.nats.url", "nats://localhost:4222")
	v.SetDefault("messaging.nsq.nsqd_addrs", "")
	v.SetDefault("messaging.nsq.lookupd_addrs", "")
	v.SetDefault("messaging.kafka.brokers", "localhost:9092")
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key split by commas, or the YAML list as-is.
func (vc *Viper) GetArray(key string) []string {
	var items []string
	switch vc.v.Get(key).(type) {
	case []any, []string:
		items = vc.v.GetStringSlice(key)
	default:
		items = strings.Split(vc.v.GetString(key), ",")
	}

	return lo.Compact(lo.Map(items, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
