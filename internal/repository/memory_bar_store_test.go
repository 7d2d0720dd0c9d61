package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXBrief/internal/analytics/seriestest"
	domrepo "FXBrief/internal/domain/repository"
)

func TestMemoryBarStoreLatestN(t *testing.T) {
	store := NewMemoryBarStore()
	bars := seriestest.DailyRamp(10, 1.0, 0.01)
	store.Put("EURUSD", domrepo.TF1d, bars)

	got, err := store.GetLatestNBars(context.Background(), "EURUSD", 3, domrepo.TF1d)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, bars[7:], got)

	// unknown symbols and timeframes answer empty, not an error
	got, err = store.GetLatestNBars(context.Background(), "GBPUSD", 3, domrepo.TF1d)
	require.NoError(t, err)
	assert.Empty(t, got)
	got, err = store.GetLatestNBars(context.Background(), "EURUSD", 3, domrepo.TF1h)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryBarStoreRange(t *testing.T) {
	store := NewMemoryBarStore()
	bars := seriestest.DailyRamp(10, 1.0, 0.01)
	store.Put("EURUSD", domrepo.TF1d, bars)

	got, err := store.GetBars(context.Background(), "EURUSD", bars[2].Time, bars[5].Time, domrepo.TF1d)
	require.NoError(t, err)
	assert.Equal(t, bars[2:6], got)
}

func TestMemoryBarStorePutReplaces(t *testing.T) {
	store := NewMemoryBarStore()
	store.Put("EURUSD", domrepo.TF1d, seriestest.DailyRamp(10, 1.0, 0.01))
	store.Put("EURUSD", domrepo.TF1d, seriestest.DailyRamp(4, 2.0, 0.01))

	got, err := store.GetLatestNBars(context.Background(), "EURUSD", 10, domrepo.TF1d)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, 2.0, got[0].Close)
}
