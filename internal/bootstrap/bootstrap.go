// Package bootstrap assembles the quota store, key sources, Gemini client and
// studio from configuration so the API server and the CLI share one wiring.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra/credentials"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/providers/genai"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/quota"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/studio"
)

// Services are the long-lived components built from a Config.
type Services struct {
	Quota   *quota.Manager
	Keys    credentials.Setter
	Gateway *imagegen.Gateway
	Studio  *studio.Studio

	closers []func()
}

// Close releases database and cache connections in reverse order.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// Build connects the configured store and returns ready services. On error
// every connection opened so far is closed.
func Build(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (_ *Services, err error) {
	svc := &Services{}
	defer func() {
		if err != nil {
			svc.Close()
		}
	}()

	envKeys := credentials.NewMemoryStore(cfg.Gemini.APIKey)
	var (
		store   domain.QuotaRepository
		keySrc  domain.CredentialSource = envKeys
		setter  credentials.Setter      = envKeys
		storeLg                         = logger.With().Str("store", cfg.Store.Driver).Logger()
	)

	switch cfg.Store.Driver {
	case infra.StoreMemory:
		store = quota.NewMemoryStore()
	case infra.StoreSQLite:
		db, err := infra.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, func() { _ = db.Close() })
		sqliteStore, err := quota.NewSQLiteStore(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("sqlite quota store: %w", err)
		}
		store = sqliteStore
	case infra.StoreRedis:
		client, err := infra.NewRedisClient(ctx, cfg.Store.RedisURL)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, func() { _ = client.Close() })
		store = quota.NewRedisStore(client)
	case infra.StorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, pool.Close)
		runner := infra.NewSQLRunner(pool, logger)

		pgStore := quota.NewPostgresStore(runner)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("quota schema: %w", err)
		}
		tokens := credentials.NewStore(runner)
		if err := tokens.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("integration token schema: %w", err)
		}
		store = pgStore
		keySrc = credentials.Chain{tokens, envKeys}
		setter = tokens
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	storeLg.Info().Msg("quota store ready")

	svc.Quota = quota.NewManager(quota.Options{
		Store:    store,
		DailyMax: cfg.Quota.DailyMax,
		Location: cfg.QuotaLocation(),
		Logger:   logger,
	})
	svc.Keys = setter

	remote, err := genai.NewClient(genai.Options{
		Keys:    keySrc,
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.Model,
		Logger:  logger,

		RequestsPerMinute: cfg.Gemini.RPM,
	})
	if err != nil {
		return nil, err
	}
	svc.Gateway = imagegen.NewGateway(remote, logger)
	svc.Studio = studio.New(svc.Quota, svc.Gateway, logger)
	return svc, nil
}
