package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/shopnotify/pkg/email"
	"github.com/dmitrymomot/shopnotify/pkg/logger"
)

// DefaultThankYouText is appended to the buyer's copy of an order email.
const DefaultThankYouText = "Thank you for using our service!"

// Dispatcher sends transactional emails for storefront events.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	repo     Repository
	sender   email.EmailSender
	renderer Renderer
	thankYou string
	logger   *slog.Logger
}

var _ Notifier = (*Dispatcher)(nil)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRenderer replaces the invoice renderer. Nil is ignored.
func WithRenderer(r Renderer) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.renderer = r
		}
	}
}

// WithThankYouText overrides the trailer of the buyer's order email.
func WithThankYouText(s string) Option {
	return func(d *Dispatcher) {
		d.thankYou = s
	}
}

// New creates a Dispatcher backed by repo and sender.
func New(repo Repository, sender email.EmailSender, opts ...Option) (*Dispatcher, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}
	if sender == nil {
		return nil, ErrSenderNil
	}

	d := &Dispatcher{
		repo:     repo,
		sender:   sender,
		renderer: TemplateRenderer{},
		thankYou: DefaultThankYouText,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(logger.Component("notify"))

	return d, nil
}

func (d *Dispatcher) send(ctx context.Context, params email.SendEmailParams) error {
	start := time.Now()
	if err := d.sender.SendEmail(ctx, params); err != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, "failed to send email",
			logger.Subject(params.Subject),
			logger.Recipients(params.SendTo),
			logger.Error(err),
		)
		return err
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "email sent",
		logger.Subject(params.Subject),
		logger.Recipients(params.SendTo),
		logger.Duration(time.Since(start)),
	)
	return nil
}
