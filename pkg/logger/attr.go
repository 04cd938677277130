package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event kind under the key "event".
func Event(kind string) slog.Attr {
	return slog.String("event", kind)
}

// MessageID records the event envelope identifier under the key "message_id".
// If id is empty, it returns an empty Attr.
func MessageID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("message_id", id)
}

// UserID records the user identifier under the key "user_id".
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

// OrderID records the order identifier under the key "order_id".
func OrderID(id int64) slog.Attr {
	return slog.Int64("order_id", id)
}

// OrderState records the order state code under the key "order_state".
func OrderState(state string) slog.Attr {
	return slog.String("order_state", state)
}

// Recipients records the addresses of an outbound message under "recipients".
func Recipients(to []string) slog.Attr {
	return slog.Any("recipients", to)
}

// Subject records an email subject under the key "subject".
func Subject(s string) slog.Attr {
	return slog.String("subject", s)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
