package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/elemental-io/elemental/pkg/config"
)

// InitRedis opens the Redis client used by the token blocklist and version
// store, and verifies the connection with a ping.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Errorf("redis init failed: %v", err)
		return nil, err
	}

	log.Info("redis initialized successfully")
	return client, nil
}
