// Package barcache decorates a BarSource with read-through caching so report
// generation does not re-scan the database for every section.
package barcache

import (
	"context"
	"errors"
	"time"

	"FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
	"FXBrief/pkg/cache"
	"FXBrief/pkg/logger"
)

// Config sets per-timeframe TTLs. Daily series move once a day, so they can
// sit longer than hourly ones.
type Config struct {
	DailyTTL  time.Duration
	HourlyTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		DailyTTL:  10 * time.Minute,
		HourlyTTL: 5 * time.Minute,
	}
}

// Store is the caching BarSource. Latest-N lookups are cached; range queries
// pass through since their key space is unbounded and the report path never
// issues them. Cache failures degrade to the underlying source.
type Store struct {
	cfg   Config
	next  domrepo.BarSource
	cache cache.Service
	log   *logger.Logger
}

func New(cfg Config, next domrepo.BarSource, c cache.Service, log *logger.Logger) *Store {
	return &Store{cfg: cfg, next: next, cache: c, log: log}
}

var _ domrepo.BarSource = (*Store)(nil)

func (s *Store) GetBars(ctx context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.Bars, error) {
	return s.next.GetBars(ctx, symbol, from, to, tf)
}

func (s *Store) GetLatestNBars(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (models.Bars, error) {
	key := cache.GenerateKeyWithParams("bars", string(tf), symbol, n)

	var cached models.Bars
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) && s.log != nil {
		s.log.Warn("bar cache read failed",
			logger.String("key", key), logger.Error(err))
	}

	bars, err := s.next.GetLatestNBars(ctx, symbol, n, tf)
	if err != nil {
		return nil, err
	}
	// empty series are never cached: a symbol that backfills later should not
	// be masked for a full TTL
	if len(bars) > 0 {
		if err := s.cache.Set(ctx, key, bars, s.ttl(tf)); err != nil && s.log != nil {
			s.log.Warn("bar cache write failed",
				logger.String("key", key), logger.Error(err))
		}
	}
	return bars, nil
}

func (s *Store) Health(ctx context.Context) error {
	return s.next.Health(ctx)
}

func (s *Store) ttl(tf domrepo.Timeframe) time.Duration {
	if tf == domrepo.TF1h {
		return s.cfg.HourlyTTL
	}
	return s.cfg.DailyTTL
}
