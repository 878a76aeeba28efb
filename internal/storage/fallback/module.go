package fallback

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/minedash/minedash/internal/config"
	"github.com/minedash/minedash/internal/domain/repository"
	"github.com/minedash/minedash/internal/storage/memory"
	"github.com/minedash/minedash/internal/storage/postgres"
	"github.com/minedash/minedash/internal/storage/rediscache"
)

// Module assembles the storage stack: the PostgreSQL remote backend wrapped
// by the fallback decorator, with Redis as the cache when an address is
// configured and an in-process cache otherwise.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Provide(newBackend),
)

type cacheParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newCache(p cacheParams, lc fx.Lifecycle) (repository.CacheBackend, error) {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("no redis configured, using in-process cache")
		return memory.New(), nil
	}

	store, err := rediscache.Open(p.Ctx, p.Config.RedisAddr, p.Config.RedisPassword, p.Config.RedisDB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	p.Logger.Info("redis cache connected", "addr", p.Config.RedisAddr)
	return store, nil
}

type backendParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Remote *postgres.Storage
	Cache  repository.CacheBackend
}

func newBackend(p backendParams) repository.StorageBackend {
	return New(p.Remote, p.Cache, p.Logger,
		WithTimeout(p.Config.StoreTimeout),
		WithStrict(p.Config.StoreStrict),
	)
}
