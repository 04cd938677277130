package events

// Config controls event ingress.
type Config struct {
	Channel      string `env:"EVENTS_CHANNEL" envDefault:"shop:events"`    // Channel is the Redis pub/sub channel carrying envelopes.
	MaxBodyBytes int64  `env:"EVENTS_MAX_BODY_BYTES" envDefault:"1048576"` // MaxBodyBytes caps HTTP request bodies.
}
