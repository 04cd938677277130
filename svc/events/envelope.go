package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/shopnotify/svc/notify"
)

// Kind names a storefront domain event.
type Kind string

const (
	KindUserRegistered            Kind = "new_user_registered"
	KindResetPasswordTokenCreated Kind = "reset_password_token_created"
	KindPasswordReset             Kind = "post_password_reset"
	KindOrderStateChanged         Kind = "order_state_changed"
)

// Kinds lists every accepted event kind.
var Kinds = []Kind{
	KindUserRegistered,
	KindResetPasswordTokenCreated,
	KindPasswordReset,
	KindOrderStateChanged,
}

// Envelope is the wire form of an event on every ingress.
type Envelope struct {
	ID      string          `json:"id,omitempty"`
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into an envelope with a fresh id.
func NewEnvelope(kind Kind, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return Envelope{ID: uuid.NewString(), Kind: kind, Payload: data}, nil
}

// ParseEnvelope decodes an envelope and assigns an id when it has none.
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if env.Kind == "" {
		return Envelope{}, fmt.Errorf("%w: kind is required", ErrInvalidPayload)
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	return env, nil
}

type passwordResetPayload struct {
	User notify.User `json:"user"`
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: payload is required", ErrInvalidPayload)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func decodeUserRegistered(data json.RawMessage) (notify.UserRegistered, error) {
	var e notify.UserRegistered
	if err := decode(data, &e); err != nil {
		return e, err
	}
	if e.UserID <= 0 || strings.TrimSpace(e.Email) == "" {
		return e, fmt.Errorf("%w: user_id and email are required", ErrInvalidPayload)
	}
	return e, nil
}

func decodeResetPasswordToken(data json.RawMessage) (notify.ResetPasswordToken, error) {
	var t notify.ResetPasswordToken
	if err := decode(data, &t); err != nil {
		return t, err
	}
	if t.Key == "" || strings.TrimSpace(t.User.Email) == "" {
		return t, fmt.Errorf("%w: key and user.email are required", ErrInvalidPayload)
	}
	return t, nil
}

func decodePasswordReset(data json.RawMessage) (notify.User, error) {
	var p passwordResetPayload
	if err := decode(data, &p); err != nil {
		return notify.User{}, err
	}
	if strings.TrimSpace(p.User.Email) == "" {
		return notify.User{}, fmt.Errorf("%w: user.email is required", ErrInvalidPayload)
	}
	return p.User, nil
}

func decodeOrderStateChanged(data json.RawMessage) (notify.OrderStateChanged, error) {
	var e notify.OrderStateChanged
	if err := decode(data, &e); err != nil {
		return e, err
	}
	if e.OrderID <= 0 || e.UserID <= 0 || e.State == "" {
		return e, fmt.Errorf("%w: order_id, user_id and state are required", ErrInvalidPayload)
	}
	return e, nil
}
