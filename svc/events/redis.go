package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/shopnotify/pkg/logger"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "shop:events"

// Subscriber consumes envelopes from a Redis pub/sub channel and hands them
// to a Dispatcher one at a time. Failed events are logged and dropped;
// redelivery is the publisher's concern.
type Subscriber struct {
	client     redis.UniversalClient
	dispatcher Dispatcher
	channel    string
	logger     *slog.Logger
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

// WithChannel sets the channel name. Empty is ignored.
func WithChannel(name string) SubscriberOption {
	return func(s *Subscriber) {
		if name != "" {
			s.channel = name
		}
	}
}

// WithSubscriberLogger sets the subscriber logger. Nil is ignored.
func WithSubscriberLogger(l *slog.Logger) SubscriberOption {
	return func(s *Subscriber) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSubscriber creates a Subscriber reading from client.
func NewSubscriber(client redis.UniversalClient, d Dispatcher, opts ...SubscriberOption) (*Subscriber, error) {
	if client == nil {
		return nil, ErrClientNil
	}
	if d == nil {
		return nil, ErrDispatcherNil
	}
	s := &Subscriber{
		client:     client,
		dispatcher: d,
		channel:    DefaultChannel,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("events.subscriber"), slog.String("channel", s.channel))
	return s, nil
}

// Run subscribes and processes messages until ctx is cancelled, which is a
// clean stop and returns nil.
func (s *Subscriber) Run(ctx context.Context) error {
	ps := s.client.Subscribe(ctx, s.channel)
	defer func() {
		if err := ps.Close(); err != nil {
			s.logger.WarnContext(ctx, "failed to close subscription", logger.Error(err))
		}
	}()

	if _, err := ps.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Join(ErrSubscribeFailed, err)
	}
	s.logger.InfoContext(ctx, "subscribed to events channel")

	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "events subscriber stopped")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrSubscriptionClosed
			}
			// An event already received is finished even during shutdown.
			s.Handle(context.WithoutCancel(ctx), []byte(msg.Payload))
		}
	}
}

// Handle parses and dispatches one message, logging the outcome.
// It reports whether the event was handled successfully.
func (s *Subscriber) Handle(ctx context.Context, payload []byte) bool {
	start := time.Now()

	env, err := ParseEnvelope(payload)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "dropping malformed event", logger.Error(err))
		return false
	}

	attrs := []slog.Attr{logger.MessageID(env.ID), logger.Event(string(env.Kind))}
	if err := s.dispatcher.Dispatch(ctx, env); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "event handling failed", append(attrs, logger.Error(err))...)
		return false
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "event handled", append(attrs, logger.Duration(time.Since(start)))...)
	return true
}

// Publish sends env to channel. Producers and tests use it to feed the
// subscriber.
func Publish(ctx context.Context, client redis.UniversalClient, channel string, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return client.Publish(ctx, channel, data).Err()
}
