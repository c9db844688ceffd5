// Package bootstrap wires process-level infrastructure for Elemental
// services: the shared logrus backend with file rotation, the Redis client
// backing token revocation, the Postgres pool and OpenTelemetry tracing.
//
// Typical startup:
//
//	cfg, err := config.LoadElemental()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := bootstrap.InitLogger(cfg.Log); err != nil {
//	    log.Fatal(err)
//	}
//
//	rdb, err := bootstrap.InitRedis(ctx, cfg.Redis)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	db, err := bootstrap.InitPostgres(ctx, cfg.Postgres)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shutdown, err := bootstrap.InitTracing(ctx, cfg.Tracing)
//	if err != nil {
//	    log.Warn(err)
//	}
//	defer shutdown(ctx)
package bootstrap
