package usecase

import (
	"context"
	"log/slog"

	"github.com/banglapremium/mailrelay/internal/email/entity"
	"github.com/banglapremium/mailrelay/internal/email/template"
	"github.com/banglapremium/mailrelay/internal/pkg/idempotency"
	"github.com/banglapremium/mailrelay/internal/pkg/instrument"
	"github.com/banglapremium/mailrelay/internal/pkg/mail"
	"github.com/banglapremium/mailrelay/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type templates interface {
	Lookup(tag entity.TypeTag) (template.Template, bool)
}

type renderer interface {
	Render(n *html.Node) (string, error)
}

type Usecase struct {
	validator   validator.Validator
	templates   templates
	renderer    renderer
	repoMail    repoMail
	idempotency idempotency.Idempotency
	ins         instrument.Instrumentation
	sent        metric.Int64Counter
}

type Dependency struct {
	Validator validator.Validator
	Templates templates
	Renderer  renderer
	RepoMail  repoMail
	// Idempotency is optional; without it every request is sent.
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	sent, err := ins.Meter("email.usecase").Int64Counter("email.send.requests",
		metric.WithDescription("Number of send requests by type and outcome"))
	if err != nil {
		slog.Error("failed to create email send counter", "error", err)
	}

	return &Usecase{
		validator:   dep.Validator,
		templates:   dep.Templates,
		renderer:    dep.Renderer,
		repoMail:    dep.RepoMail,
		idempotency: dep.Idempotency,
		ins:         ins,
		sent:        sent,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("email.usecase").Start(ctx, name)
}
