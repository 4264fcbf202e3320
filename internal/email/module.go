package email

import (
	"context"

	"github.com/banglapremium/mailrelay/internal/email/inbound"
	"github.com/banglapremium/mailrelay/internal/email/outbound/email"
	"github.com/banglapremium/mailrelay/internal/email/template"
	"github.com/banglapremium/mailrelay/internal/email/usecase"
	"github.com/banglapremium/mailrelay/internal/pkg/config"
	"github.com/banglapremium/mailrelay/internal/pkg/goroutine"
	"github.com/banglapremium/mailrelay/internal/pkg/idempotency"
	"github.com/banglapremium/mailrelay/internal/pkg/instrument"
	"github.com/banglapremium/mailrelay/internal/pkg/mail"
	"github.com/banglapremium/mailrelay/internal/pkg/markup"
	"github.com/banglapremium/mailrelay/internal/pkg/messaging"
	"github.com/banglapremium/mailrelay/internal/pkg/router"
	"github.com/banglapremium/mailrelay/internal/pkg/uid"
	"github.com/banglapremium/mailrelay/internal/pkg/validator"
)

type Dependency struct {
	// Ctx scopes the queue consumer; it is only started when Ctx and Consumer are set.
	Ctx         context.Context
	Consumer    messaging.Consumer
	Config      config.Config
	Instrument  instrument.Instrumentation
	UUID        uid.StringID
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Router      *router.Router
	Mail        mail.Mail
	Idempotency idempotency.Idempotency
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)

	var opts []template.Option
	if dep.Config.GetBool("templates.broadcast.sanitize") {
		opts = append(opts, template.WithSanitizer(markup.NewSanitizer().Sanitize))
	}

	uc := usecase.New(usecase.Dependency{
		Validator:   dep.Validator,
		Templates:   template.NewRegistry(opts...),
		Renderer:    markup.NewRenderer(),
		RepoMail:    repoMail,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil && dep.Consumer != nil {
		return inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Consumer, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
