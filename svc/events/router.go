package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/shopnotify/pkg/logger"
	"github.com/dmitrymomot/shopnotify/svc/notify"
)

// Dispatcher routes a decoded envelope to its handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, env Envelope) error
}

// Router decodes envelopes and calls the matching notify.Notifier method.
type Router struct {
	notifier     notify.Notifier
	logger       *slog.Logger
	maxBodyBytes int64
}

var _ Dispatcher = (*Router)(nil)

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithLogger sets the router logger. Nil is ignored.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxBodyBytes caps HTTP request bodies. Non-positive values are ignored.
func WithMaxBodyBytes(n int64) RouterOption {
	return func(r *Router) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// NewRouter returns a Router delivering events to n.
func NewRouter(n notify.Notifier, opts ...RouterOption) (*Router, error) {
	if n == nil {
		return nil, ErrNotifierNil
	}
	r := &Router{
		notifier:     n,
		logger:       logger.Discard(),
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("events"))
	return r, nil
}

// Dispatch decodes env.Payload according to env.Kind and runs the handler
// synchronously, returning its error.
func (r *Router) Dispatch(ctx context.Context, env Envelope) error {
	r.logger.LogAttrs(ctx, slog.LevelDebug, "dispatching event",
		logger.MessageID(env.ID),
		logger.Event(string(env.Kind)),
	)

	switch env.Kind {
	case KindUserRegistered:
		e, err := decodeUserRegistered(env.Payload)
		if err != nil {
			return err
		}
		return r.notifier.UserRegistered(ctx, e)

	case KindResetPasswordTokenCreated:
		t, err := decodeResetPasswordToken(env.Payload)
		if err != nil {
			return err
		}
		return r.notifier.PasswordResetTokenCreated(ctx, t)

	case KindPasswordReset:
		u, err := decodePasswordReset(env.Payload)
		if err != nil {
			return err
		}
		return r.notifier.PasswordReset(ctx, u)

	case KindOrderStateChanged:
		e, err := decodeOrderStateChanged(env.Payload)
		if err != nil {
			return err
		}
		return r.notifier.OrderStateChanged(ctx, e)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventKind, string(env.Kind))
	}
}
