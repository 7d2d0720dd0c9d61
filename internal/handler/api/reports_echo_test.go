package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
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
	"FXBrief/internal/repository"
	"FXBrief/internal/usecase"
	xlogger "FXBrief/pkg/logger"
)

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

func seededStore() *repository.MemoryBarStore {
	s := repository.NewMemoryBarStore()
	s.Put("EURUSD", domrepo.TF1d, seriestest.DailyTrend(600, 1.08, 0.05, 1))
	s.Put("GBPUSD", domrepo.TF1d, seriestest.DailyTrend(600, 1.27, -0.03, 2))
	s.Put("USDJPY", domrepo.TF1d, seriestest.DailyTrend(600, 150, 0.08, 3))
	s.Put("SPY", domrepo.TF1d, seriestest.DailyTrend(600, 500, 0.12, 4))
	s.Put("TLT", domrepo.TF1d, seriestest.DailyTrend(600, 95, -0.05, 5))
	s.Put("DBC", domrepo.TF1d, seriestest.DailyTrend(600, 22, 0.04, 6))
	s.Put("VIXY", domrepo.TF1d, seriestest.VIXLike(600, 7))
	s.Put("EURUSD", domrepo.TF1h, seriestest.Hourly(240, 1.08, 11))
	s.Put("GBPUSD", domrepo.TF1h, seriestest.Hourly(240, 1.27, 12))
	s.Put("USDJPY", domrepo.TF1h, seriestest.Hourly(240, 150, 13))
	return s
}

func newTestHandler(t *testing.T, store domrepo.BarSource) *ReportsEchoHandler {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	u := testUniverse()
	reports := usecase.NewReportUseCase(
		usecase.DefaultReportConfig(),
		store,
		u,
		technical.NewEngine(technical.DefaultConfig(), nil),
		event.NewEngine(event.DefaultConfig(), nil),
		cars.NewEngine(cars.DefaultConfig(), u, nil),
		session.NewEngine(session.DefaultConfig(), u, nil),
		factor.NewFXEngine(factor.DefaultFXConfig(), u, nil),
		factor.NewETFEngine(factor.DefaultETFConfig(), u, nil),
		nil,
		nil,
	)
	bars := usecase.NewBarsUseCase(store)
	return NewReportsEchoHandler(log, reports, bars)
}

func serve(h *ReportsEchoHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestReportEndpoint(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/report?type=eod")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, max-age=15", rec.Header().Get(echo.HeaderCacheControl))

	env := decode(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var rep models.MarketReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, models.ReportEOD, rep.Type)
	assert.Len(t, rep.Technical, len(testUniverse().AllFXPairs()))
	assert.NotNil(t, rep.SessionSummary)
	assert.Nil(t, rep.SessionHeatmap)
}

func TestReportValidatesType(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/report?type=weekly")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestReportRateLimited(t *testing.T) {
	h := newTestHandler(t, seededStore())
	e := echo.New()
	h.RegisterRoutes(e)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRegimeEndpoint(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/regime?weeks=26")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	var regime models.CARSRegime
	require.NoError(t, json.Unmarshal(env.Data, &regime))
	assert.Contains(t, []string{models.RegimeNormal, models.RegimeShock}, regime.Label)
}

func TestRegimeValidatesWeeks(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/regime?weeks=5")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFactorsEndpointETF(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/factors?universe=etf")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	var rep models.ETFFactorReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, []string{"SPY", "TLT", "DBC"}, rep.PCA.Tickers)
}

func TestFactorsUnavailableWithoutHistory(t *testing.T) {
	h := newTestHandler(t, repository.NewMemoryBarStore())

	rec := serve(h, "/api/factors")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, http.StatusServiceUnavailable, env.Status)
}

func TestBarsEndpoint(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/bars?symbol=EURUSD&n=10")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	var res usecase.GetBarsResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "EURUSD", res.Symbol)
	assert.Equal(t, "1d", res.Timeframe)
	assert.Equal(t, 10, res.Count)
}

func TestBarsRequiresSymbol(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/api/bars")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, seededStore())

	rec := serve(h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthzUnavailable(t *testing.T) {
	h := newTestHandler(t, &downStore{})

	rec := serve(h, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// downStore is a BarSource whose backing database is unreachable.
type downStore struct{}

func (d *downStore) GetBars(context.Context, string, time.Time, time.Time, domrepo.Timeframe) (models.Bars, error) {
	return nil, errors.New("connection refused")
}

func (d *downStore) GetLatestNBars(context.Context, string, int, domrepo.Timeframe) (models.Bars, error) {
	return nil, errors.New("connection refused")
}

func (d *downStore) Health(context.Context) error { return errors.New("connection refused") }
