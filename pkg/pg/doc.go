// Package pg bootstraps the PostgreSQL connection used by the notifier's
// repository: a pgx/v5 pool opened with startup retries, goose migrations
// applied from an fs.FS, a readiness probe, and helpers that classify pgx
// errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if cfg.AutoMigrate {
//	    if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//	        return err
//	    }
//	}
//
// All errors wrap one of the package sentinels and can be checked with
// errors.Is.
package pg
