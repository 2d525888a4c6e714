package app

import (
	"context"

	"profile-shell/internal/config"
	"profile-shell/internal/logger"
	"profile-shell/internal/redis"
	"profile-shell/internal/session"
)

type Infra struct {
	Sessions session.Store
	Redis    *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	if cfg.SessionBackend == config.SessionBackendMemory {
		logger.Warn("using in-memory session store", nil)
		return &Infra{Sessions: session.NewMemoryStore()}, nil
	}

	redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", map[string]any{
		"addr": cfg.RedisAddr,
	})

	return &Infra{
		Sessions: session.NewRedisStore(redisClient.Client),
		Redis:    redisClient,
	}, nil
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}
