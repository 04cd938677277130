// Package httpserver runs an http.Handler with configurable timeouts and
// context-driven graceful shutdown, and provides liveness and readiness
// handlers.
//
// Run blocks until the context is cancelled or Shutdown is called. The
// caller owns signal handling, typically through signal.NotifyContext:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen and serve failures are wrapped with ErrStart; shutdown failures
// with ErrShutdown.
package httpserver
