package mail

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Driver names accepted by NewFromDriver.
const (
	DriverSMTP   = "smtp"
	DriverResend = "resend"
	DriverLog    = "log"
)

// Config carries the settings of every driver; only the selected one is read.
type Config struct {
	Driver string
	SMTP   SMTPConfig
	Resend ResendConfig
	// From is the process-wide sender shared by all drivers.
	From string
}

// NewFromDriver builds the transport named by cfg.Driver. An empty driver means SMTP.
//
// An SMTP driver without host or port still starts: it yields an Unavailable
// transport and each send fails with ErrSMTPHostPortRequired.
func NewFromDriver(cfg Config) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSMTP:
		sc := cfg.SMTP
		sc.From = cfg.From
		m, err := NewSMTP(sc)
		if errors.Is(err, ErrSMTPHostPortRequired) {
			slog.Warn("smtp host or port missing, every send will fail",
				"host", sc.Host, "port", sc.Port)
			return NewUnavailable(err), nil
		}
		if err != nil {
			return nil, err
		}
		return m, nil
	case DriverResend:
		rc := cfg.Resend
		rc.From = cfg.From
		m, err := NewResend(rc)
		if err != nil {
			return nil, err
		}
		return m, nil
	case DriverLog:
		return NewLog(cfg.From), nil
	default:
		return nil, fmt.Errorf("mail: unsupported driver %q", cfg.Driver)
	}
}
