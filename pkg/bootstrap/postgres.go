package bootstrap

import (
	"context"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"github.com/elemental-io/elemental/pkg/config"
	"github.com/elemental-io/elemental/pkg/database"
)

// InitPostgres opens the Postgres pool and verifies connectivity.
func InitPostgres(ctx context.Context, cfg config.PostgresConfig) (*sqlx.DB, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Errorf("postgres init failed: %v", err)
		return nil, err
	}

	log.Info("postgres initialized successfully")
	return db, nil
}
