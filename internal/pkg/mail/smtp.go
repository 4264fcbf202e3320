package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/quotedprintable"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/banglapremium/mailrelay/internal/pkg/clock"
	"github.com/banglapremium/mailrelay/internal/pkg/uid"
)

// ErrSMTPHostPortRequired is returned when Host or Port is missing.
var ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")

// Security selects how the SMTP connection is protected.
type Security int

const (
	// SecurityImplicit wraps the connection in TLS before the SMTP greeting.
	SecurityImplicit Security = iota
	// SecurityStartTLS connects in plain text and upgrades with STARTTLS when offered.
	SecurityStartTLS
)

func (s Security) String() string {
	if s == SecurityStartTLS {
		return "starttls"
	}
	return "implicit-tls"
}

// ParseSecurity maps the configured mode to a Security. Only the exact value
// "TLS" selects STARTTLS; anything else, empty included, means implicit TLS.
// known reports whether the value was one of "TLS" or "SSL".
func ParseSecurity(mode string) (sec Security, known bool) {
	switch mode {
	case "TLS":
		return SecurityStartTLS, true
	case "SSL":
		return SecurityImplicit, true
	default:
		return SecurityImplicit, false
	}
}

// SMTPConfig configures the SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   string
	Username string
	Password string
	// From is the default sender used when Message.From is empty.
	From string
	// Timeout bounds the whole exchange, dial included.
	Timeout time.Duration
	// TLSConfig overrides the client TLS settings; ServerName defaults to Host.
	TLSConfig *tls.Config
	// MessageID generates the local part of Message-ID headers.
	MessageID uid.StringID
	// Clock stamps the Date header; defaults to the system clock.
	Clock clock.Clocker
}

// SMTP sends mail over a fresh connection per message.
type SMTP struct {
	addr     string
	host     string
	from     string
	security Security
	timeout  time.Duration
	tls      *tls.Config
	auth     smtp.Auth
	msgID    uid.StringID
	clock    clock.Clocker
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	sec, known := ParseSecurity(cfg.Secure)
	if !known {
		slog.Warn("unrecognised smtp security mode, using implicit TLS",
			"secure", cfg.Secure, "mode", sec.String())
	}

	tlsCfg := &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if cfg.TLSConfig != nil {
		tlsCfg = cfg.TLSConfig.Clone()
		if tlsCfg.ServerName == "" {
			tlsCfg.ServerName = cfg.Host
		}
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	msgID := cfg.MessageID
	if msgID == nil {
		msgID = uid.NewUUID()
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &SMTP{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:     cfg.Host,
		from:     cfg.From,
		security: sec,
		timeout:  timeout,
		tls:      tlsCfg,
		auth:     auth,
		msgID:    msgID,
		clock:    clk,
	}, nil
}

// Send delivers msg. The connection is closed when ctx is done.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	from, err := sender(msg, s.from)
	if err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	envFrom, err := netmail.ParseAddress(from)
	if err != nil {
		return fmt.Errorf("mail: invalid sender %q: %w", from, err)
	}

	rcpts := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		addr, err := netmail.ParseAddress(to)
		if err != nil {
			return fmt.Errorf("mail: invalid recipient %q: %w", to, err)
		}
		rcpts = append(rcpts, addr.Address)
	}

	raw, err := s.compose(from, envFrom.Address, msg)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if err := s.deliver(client, envFrom.Address, rcpts, raw); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		return err
	}

	return nil
}

func (s *SMTP) dial(ctx context.Context) (net.Conn, error) {
	nd := &net.Dialer{Timeout: s.timeout}
	if s.security == SecurityImplicit {
		td := &tls.Dialer{NetDialer: nd, Config: s.tls}
		return td.DialContext(ctx, "tcp", s.addr)
	}
	return nd.DialContext(ctx, "tcp", s.addr)
}

func (s *SMTP) deliver(c *smtp.Client, from string, rcpts []string, raw []byte) error {
	if s.security == SecurityStartTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tls); err != nil {
				return err
			}
		}
	}

	if s.auth != nil {
		if err := c.Auth(s.auth); err != nil {
			return err
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, r := range rcpts {
		if err := c.Rcpt(r); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

func (s *SMTP) compose(from, envFrom string, msg Message) ([]byte, error) {
	domain := "localhost"
	if at := strings.LastIndexByte(envFrom, '@'); at != -1 {
		domain = envFrom[at+1:]
	}

	var buf bytes.Buffer
	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, headerValue(v))
	}

	header("From", from)
	header("To", strings.Join(msg.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)))
	header("Date", s.clock.Now().Format(time.RFC1123Z))
	header("Message-ID", "<"+s.msgID.Generate()+"@"+domain+">")
	header("MIME-Version", "1.0")
	header("Content-Type", "text/html; charset=UTF-8")
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// headerValue keeps caller input from starting new header lines.
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

func (s *SMTP) Close() error {
	return nil
}
