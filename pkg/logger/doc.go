// Package logger builds log/slog loggers for the notifier.
//
// New applies functional options over production-safe defaults (JSON, INFO,
// stdout). WithEnvironment switches to text/DEBUG outside production and
// staging. Context extractors registered with WithContextValue or
// WithContextExtractors add request-scoped attributes, such as the event
// envelope id, to every record logged with that context.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "shopnotify"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "email sent",
//	    logger.OrderID(42),
//	    logger.Recipients([]string{"buyer@example.com"}),
//	)
//
// The attribute helpers in attr.go keep key names consistent across packages.
package logger
