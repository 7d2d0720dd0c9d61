package repository

import (
	"context"
	"sync"
	"time"

	"FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
)

// MemoryBarStore implements BarSource over seeded in-memory series. Like the
// ClickHouse store it answers unknown symbols with an empty series, not an
// error. Used by tests and by one-shot runs without a database.
type MemoryBarStore struct {
	mu   sync.RWMutex
	data map[domrepo.Timeframe]map[string]models.Bars
}

func NewMemoryBarStore() *MemoryBarStore {
	return &MemoryBarStore{data: make(map[domrepo.Timeframe]map[string]models.Bars)}
}

// Put seeds one symbol's series for a timeframe, replacing any prior series.
func (s *MemoryBarStore) Put(symbol string, tf domrepo.Timeframe, bars models.Bars) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[tf] == nil {
		s.data[tf] = make(map[string]models.Bars)
	}
	cp := make(models.Bars, len(bars))
	copy(cp, bars)
	s.data[tf][symbol] = cp
}

func (s *MemoryBarStore) GetBars(_ context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.Bars, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(models.Bars, 0)
	for _, b := range s.data[tf][symbol] {
		if !b.Time.Before(from) && !b.Time.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemoryBarStore) GetLatestNBars(_ context.Context, symbol string, n int, tf domrepo.Timeframe) (models.Bars, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bars := s.data[tf][symbol].Tail(n)
	out := make(models.Bars, len(bars))
	copy(out, bars)
	return out, nil
}

func (s *MemoryBarStore) Health(_ context.Context) error { return nil }

var _ domrepo.BarSource = (*MemoryBarStore)(nil)
