package events

import "errors"

var (
	ErrUnknownEventKind   = errors.New("events: unknown event kind")
	ErrInvalidPayload     = errors.New("events: invalid event payload")
	ErrNotifierNil        = errors.New("events: notifier cannot be nil")
	ErrClientNil          = errors.New("events: redis client cannot be nil")
	ErrDispatcherNil      = errors.New("events: dispatcher cannot be nil")
	ErrSubscribeFailed    = errors.New("events: failed to subscribe to channel")
	ErrSubscriptionClosed = errors.New("events: subscription channel closed")
)
