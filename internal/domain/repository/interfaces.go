package repository

import (
	"context"
	"time"

	"FXBrief/internal/domain/models"
)

// BarSource provides read-only access to cached bar series for analytics.
// Implementations never reach upstream providers; keeping the cache fresh is
// the ingest side's responsibility.
type BarSource interface {
	GetBars(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) (models.Bars, error)
	GetLatestNBars(ctx context.Context, symbol string, n int, tf Timeframe) (models.Bars, error)
	Health(ctx context.Context) error // ping
}

type Metrics interface {
	RecordReport(reportType string)
	RecordError(kind string)
	RecordSpot(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordInstruments(section string, n int)
}
