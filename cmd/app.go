package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sells-group/region-service/internal/db"
	"github.com/sells-group/region-service/internal/reconcile"
	"github.com/sells-group/region-service/internal/refs"
	"github.com/sells-group/region-service/internal/region"
	"github.com/sells-group/region-service/internal/user"
	"github.com/sells-group/region-service/pkg/geocode"
)

// env bundles the wired services behind a single shutdown handle.
type env struct {
	pool    *pgxpool.Pool
	users   *user.Service
	regions *region.Service
}

func (e *env) Close() {
	e.pool.Close()
}

// initEnv connects the database and wires stores, the geocode reconciler and
// the reference consistency manager into the two services.
func initEnv(ctx context.Context) (*env, error) {
	pool, err := db.Connect(ctx, cfg.Store.DatabaseURL, &db.PoolConfig{
		MaxConns: int32(cfg.Store.MaxConns),
		MinConns: int32(cfg.Store.MinConns),
	})
	if err != nil {
		return nil, err
	}

	geoOpts := []geocode.Option{
		geocode.WithTimeout(time.Duration(cfg.Geocode.TimeoutSecs) * time.Second),
	}
	if cfg.Geocode.Key != "" {
		geoOpts = append(geoOpts, geocode.WithAPIKey(cfg.Geocode.Key))
	}
	if cfg.Geocode.RatePerSec > 0 {
		geoOpts = append(geoOpts, geocode.WithRateLimit(cfg.Geocode.RatePerSec))
	}
	geo := geocode.NewClient(cfg.Geocode.BaseURL, geoOpts...)

	userStore := user.NewPostgresStore(pool)
	regionStore := region.NewPostgresStore(pool)

	return &env{
		pool:    pool,
		users:   user.NewService(userStore, reconcile.New(geo)),
		regions: region.NewService(regionStore, refs.NewManager(regionStore, userStore)),
	}, nil
}
