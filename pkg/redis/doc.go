// Package redis connects to Redis with retries and exposes a readiness check.
//
// Redis is optional for the notifier. It carries the event bus channel the
// subscriber in svc/events listens on; when REDIS_URL is empty the service
// runs with HTTP ingress only.
//
//	cfg := config.MustLoad[redis.Config]()
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//	}
//
// Errors are sentinels joined with the underlying go-redis error, so
// errors.Is works on both.
package redis
