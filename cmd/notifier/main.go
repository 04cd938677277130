// Command notifier receives storefront domain events over HTTP and Redis
// pub/sub and sends the matching transactional emails.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/shopnotify/migrations"
	"github.com/dmitrymomot/shopnotify/pkg/config"
	"github.com/dmitrymomot/shopnotify/pkg/email"
	"github.com/dmitrymomot/shopnotify/pkg/httpserver"
	"github.com/dmitrymomot/shopnotify/pkg/logger"
	"github.com/dmitrymomot/shopnotify/pkg/pg"
	"github.com/dmitrymomot/shopnotify/pkg/redis"
	"github.com/dmitrymomot/shopnotify/svc/events"
	"github.com/dmitrymomot/shopnotify/svc/notify"
	"github.com/dmitrymomot/shopnotify/svc/notify/postgres"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Name         string `env:"APP_NAME" envDefault:"shopnotify"`
	ThankYouText string `env:"ORDER_THANK_YOU_TEXT" envDefault:"Thank you for using our service!"`
}

func main() {
	var app appConfig
	config.MustLoad(&app)

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app, log); err != nil {
		log.Error("notifier stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("notifier stopped")
}

func run(ctx context.Context, app appConfig, log *slog.Logger) error {
	var (
		pgCfg     pg.Config
		redisCfg  redis.Config
		mailCfg   email.Config
		httpCfg   httpserver.Config
		eventsCfg events.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&mailCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&eventsCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if pgCfg.AutoMigrate {
		start := time.Now()
		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			return err
		}
		log.Info("migrations applied", logger.Duration(time.Since(start)))
	}

	sender, err := newSender(mailCfg, log)
	if err != nil {
		return err
	}

	dispatcher, err := notify.New(postgres.NewRepository(pool), sender,
		notify.WithLogger(log),
		notify.WithThankYouText(app.ThankYouText),
	)
	if err != nil {
		return err
	}

	router, err := events.NewRouter(dispatcher,
		events.WithLogger(log),
		events.WithMaxBodyBytes(eventsCfg.MaxBodyBytes),
	)
	if err != nil {
		return err
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}

	g, ctx := errgroup.WithContext(ctx)

	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})

		sub, err := events.NewSubscriber(client, router,
			events.WithChannel(eventsCfg.Channel),
			events.WithSubscriberLogger(log),
		)
		if err != nil {
			return err
		}
		g.Go(func() error { return sub.Run(ctx) })
	} else {
		log.Info("REDIS_URL is not set, event subscriber disabled")
	}

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	g.Go(func() error { return srv.Run(ctx, routes(log, router, checks)) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newSender(cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.PostmarkEnabled() {
		log.Info("sending email through Postmark")
		return email.NewPostmarkClient(cfg)
	}
	log.Warn("Postmark tokens are not set, writing emails to disk", slog.String("dir", cfg.DevDir))
	return email.NewDevSender(cfg.DevDir), nil
}

func routes(log *slog.Logger, router *events.Router, checks []httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks...))
	router.Register(r)

	return r
}
