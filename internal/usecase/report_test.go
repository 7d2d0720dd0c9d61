package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXBrief/internal/analytics/cars"
	"FXBrief/internal/analytics/event"
	"FXBrief/internal/analytics/factor"
	"FXBrief/internal/analytics/seriestest"
	"FXBrief/internal/analytics/session"
	"FXBrief/internal/analytics/technical"
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
)

// memStore is an in-memory BarSource. Symbols without seeded data yield empty
// series, mirroring a cache miss; symbols in fail return their error.
type memStore struct {
	daily     map[string]models.Bars
	hourly    map[string]models.Bars
	fail      map[string]error
	healthErr error
}

func (m *memStore) byTimeframe(tf domrepo.Timeframe) map[string]models.Bars {
	if tf == domrepo.TF1h {
		return m.hourly
	}
	return m.daily
}

func (m *memStore) GetBars(_ context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.Bars, error) {
	if err, ok := m.fail[symbol]; ok {
		return nil, err
	}
	var out models.Bars
	for _, b := range m.byTimeframe(tf)[symbol] {
		if !b.Time.Before(from) && !b.Time.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) GetLatestNBars(_ context.Context, symbol string, n int, tf domrepo.Timeframe) (models.Bars, error) {
	if err, ok := m.fail[symbol]; ok {
		return nil, err
	}
	return m.byTimeframe(tf)[symbol].Tail(n), nil
}

func (m *memStore) Health(_ context.Context) error { return m.healthErr }

type captureMetrics struct {
	reports     []string
	errorKinds  []string
	spots       map[string]float64
	latencyOps  []string
	instruments map[string]int
}

func newCaptureMetrics() *captureMetrics {
	return &captureMetrics{spots: map[string]float64{}, instruments: map[string]int{}}
}

func (m *captureMetrics) RecordReport(reportType string) { m.reports = append(m.reports, reportType) }
func (m *captureMetrics) RecordError(kind string)        { m.errorKinds = append(m.errorKinds, kind) }
func (m *captureMetrics) RecordSpot(symbol string, price float64) { m.spots[symbol] = price }
func (m *captureMetrics) RecordLatency(op string, _ float64)      { m.latencyOps = append(m.latencyOps, op) }
func (m *captureMetrics) RecordInstruments(section string, n int) { m.instruments[section] = n }

func testUniverse() markets.Universe {
	return markets.Universe{
		G10Pairs:    []string{"EURUSD", "GBPUSD", "USDJPY"},
		ETFs:        []string{"SPY", "TLT", "DBC"},
		SafeHavens:  []string{"JPY", "CHF"},
		Equity:      "SPY",
		Bonds:       "TLT",
		Commodities: "DBC",
		VIX:         "VIXY",
	}
}

func seededStore() *memStore {
	return &memStore{
		daily: map[string]models.Bars{
			"EURUSD": seriestest.DailyTrend(600, 1.08, 0.05, 1),
			"GBPUSD": seriestest.DailyTrend(600, 1.27, -0.03, 2),
			"USDJPY": seriestest.DailyTrend(600, 150, 0.08, 3),
			"SPY":    seriestest.DailyTrend(600, 500, 0.12, 4),
			"TLT":    seriestest.DailyTrend(600, 95, -0.05, 5),
			"DBC":    seriestest.DailyTrend(600, 22, 0.04, 6),
			"VIXY":   seriestest.VIXLike(600, 7),
		},
		hourly: map[string]models.Bars{
			"EURUSD": seriestest.Hourly(240, 1.08, 11),
			"GBPUSD": seriestest.Hourly(240, 1.27, 12),
			"USDJPY": seriestest.Hourly(240, 150, 13),
		},
		fail: map[string]error{},
	}
}

func newTestUseCase(store domrepo.BarSource, m domrepo.Metrics) *ReportUseCase {
	u := testUniverse()
	return NewReportUseCase(
		DefaultReportConfig(),
		store,
		u,
		technical.NewEngine(technical.DefaultConfig(), nil),
		event.NewEngine(event.DefaultConfig(), nil),
		cars.NewEngine(cars.DefaultConfig(), u, nil),
		session.NewEngine(session.DefaultConfig(), u, nil),
		factor.NewFXEngine(factor.DefaultFXConfig(), u, nil),
		factor.NewETFEngine(factor.DefaultETFConfig(), u, nil),
		m,
		nil,
	)
}

func TestGenerateMorningReport(t *testing.T) {
	metrics := newCaptureMetrics()
	uc := newTestUseCase(seededStore(), metrics)

	rep, err := uc.Generate(context.Background(), ReportTypeMorning)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, models.ReportMorning, rep.Type)
	ts := strings.TrimSuffix(rep.GeneratedAt, " UTC")
	require.NotEqual(t, rep.GeneratedAt, ts)
	_, err = time.Parse("2006-01-02 15:04", ts)
	require.NoError(t, err)

	pairs := testUniverse().AllFXPairs()
	require.Len(t, rep.Technical, len(pairs))
	require.Len(t, rep.Events, len(pairs))
	for i, pair := range pairs {
		assert.Equal(t, pair, rep.Technical[i].Pair)
		assert.Equal(t, pair, rep.Events[i].Pair)
		assert.NotNil(t, rep.Technical[i].Spot, pair)
		assert.NotNil(t, rep.Events[i].VIXLevel, pair)
	}

	require.NotNil(t, rep.CARS)
	assert.Len(t, rep.CARS.Rankings, len(pairs))
	assert.NotEmpty(t, rep.CARS.PerformingFactor)

	require.NotNil(t, rep.SessionSummary)
	require.NotNil(t, rep.SessionHeatmap)
	assert.Len(t, rep.SessionSummary.Rows, len(pairs))

	require.NotNil(t, rep.FXFactors)
	assert.Equal(t, 3, rep.FXFactors.PCA.NAssets)
	require.NotNil(t, rep.ETFFactors)
	assert.Equal(t, 3, rep.ETFFactors.PCA.NAssets)

	assert.Nil(t, rep.Errors)

	assert.Equal(t, []string{ReportTypeMorning}, metrics.reports)
	assert.Contains(t, metrics.latencyOps, "report:morning")
	assert.Equal(t, len(pairs), metrics.instruments["technical"])
	assert.Equal(t, len(pairs), metrics.instruments["events"])
	assert.Contains(t, metrics.spots, "EURUSD")
	assert.Empty(t, metrics.errorKinds)
}

func TestGenerateEODOmitsHeatmap(t *testing.T) {
	uc := newTestUseCase(seededStore(), nil) // nil metrics must be tolerated

	rep, err := uc.Generate(context.Background(), ReportTypeEOD)
	require.NoError(t, err)

	assert.Equal(t, models.ReportEOD, rep.Type)
	require.NotNil(t, rep.SessionSummary)
	assert.Nil(t, rep.SessionHeatmap)
}

func TestGenerateUnknownType(t *testing.T) {
	uc := newTestUseCase(seededStore(), nil)

	_, err := uc.Generate(context.Background(), "weekly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report type")
}

func TestGenerateCollectsLoadErrors(t *testing.T) {
	metrics := newCaptureMetrics()
	store := seededStore()
	store.fail["GBPUSD"] = errors.New("connection refused")
	store.fail["VIXY"] = errors.New("connection refused")
	uc := newTestUseCase(store, metrics)

	rep, err := uc.Generate(context.Background(), ReportTypeMorning)
	require.NoError(t, err)

	require.NotNil(t, rep.Errors)
	assert.Contains(t, rep.Errors, "daily:GBPUSD")
	assert.Contains(t, rep.Errors, "hourly:GBPUSD")
	assert.Contains(t, rep.Errors, "proxy:VIXY")
	assert.Len(t, rep.Errors, 3)

	// the failed pair still gets rows, rendered not-applicable
	require.Len(t, rep.Technical, 3)
	assert.Equal(t, "GBPUSD", rep.Technical[1].Pair)
	assert.Equal(t, models.SignalNA, rep.Technical[1].Signal)
	assert.Nil(t, rep.Technical[1].Spot)
	assert.Equal(t, models.SignalNA, rep.Events[1].Signal)

	// missing VIX neutralizes the confirmation legs for every pair
	assert.Nil(t, rep.Events[0].VIXLevel)

	// two aligned pairs are not enough for the FX decomposition
	assert.Nil(t, rep.FXFactors)
	require.NotNil(t, rep.ETFFactors)

	assert.Contains(t, metrics.errorKinds, "daily_bars")
	assert.Contains(t, metrics.errorKinds, "hourly_bars")
	assert.Contains(t, metrics.errorKinds, "proxy_bars")
}

func TestRegimeDefaultWindow(t *testing.T) {
	uc := newTestUseCase(seededStore(), nil)

	regime, err := uc.Regime(context.Background(), 0)
	require.NoError(t, err)
	require.NotNil(t, regime)
	assert.Contains(t, []string{models.RegimeNormal, models.RegimeShock}, regime.Label)
}

func TestRegimeProxyError(t *testing.T) {
	store := seededStore()
	store.fail["SPY"] = errors.New("connection refused")
	uc := newTestUseCase(store, nil)

	_, err := uc.Regime(context.Background(), 52)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load equity proxy")
}

func TestFXFactorsInsufficientHistory(t *testing.T) {
	store := seededStore()
	store.fail["EURUSD"] = errors.New("connection refused")
	uc := newTestUseCase(store, nil)

	_, err := uc.FXFactors(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestETFFactorsStandalone(t *testing.T) {
	uc := newTestUseCase(seededStore(), nil)

	rep, err := uc.ETFFactors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY", "TLT", "DBC"}, rep.PCA.Tickers)
}

func TestHealth(t *testing.T) {
	store := seededStore()
	uc := newTestUseCase(store, nil)
	require.NoError(t, uc.Health(context.Background()))

	store.healthErr = errors.New("no route to host")
	err := uc.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bar store")
}
