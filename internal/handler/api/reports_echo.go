package api

import (
	"errors"
	"time"

	models "FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
	"FXBrief/internal/service/metrics"
	"FXBrief/internal/service/ratelimit"
	"FXBrief/internal/usecase"
	xhttp "FXBrief/pkg/http"
	xlogger "FXBrief/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type ReportsEchoHandler struct {
	logger  *xlogger.Logger
	reports *usecase.ReportUseCase
	bars    *usecase.BarsUseCase
	rl      *ratelimit.Limiter
}

func NewReportsEchoHandler(logger *xlogger.Logger, reports *usecase.ReportUseCase, bars *usecase.BarsUseCase) *ReportsEchoHandler {
	metrics.Register()
	return &ReportsEchoHandler{
		logger:  logger,
		reports: reports,
		bars:    bars,
		rl:      ratelimit.New(),
	}
}

func (h *ReportsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/report", h.Report)
	g.GET("/regime", h.Regime)
	g.GET("/factors", h.Factors)
	g.GET("/bars", h.Bars)
	e.GET("/healthz", h.Health)
}

// Report assembles a full morning or EOD brief. It is by far the most
// expensive endpoint, so its bucket refills slowly.
func (h *ReportsEchoHandler) Report(c echo.Context) error {
	const endpoint = "report"
	start := time.Now()
	defer func() {
		metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 2, 0.2) {
		metrics.RateLimited.WithLabelValues(endpoint).Inc()
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.reports.Generate(c.Request().Context(), req.Type)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("report usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *ReportsEchoHandler) Regime(c echo.Context) error {
	const endpoint = "regime"
	start := time.Now()
	defer func() {
		metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req := &models.RegimeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 1) {
		metrics.RateLimited.WithLabelValues(endpoint).Inc()
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.reports.Regime(c.Request().Context(), req.Weeks)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("regime usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ReportsEchoHandler) Factors(c echo.Context) error {
	const endpoint = "factors"
	start := time.Now()
	defer func() {
		metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req := &models.FactorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 1) {
		metrics.RateLimited.WithLabelValues(endpoint).Inc()
		return xhttp.TooManyRequestsResponse(c)
	}

	var (
		res interface{}
		err error
	)
	if req.Universe == "etf" {
		res, err = h.reports.ETFFactors(c.Request().Context())
	} else {
		res, err = h.reports.FXFactors(c.Request().Context())
	}
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("factors usecase error",
			xlogger.String("universe", req.Universe),
			xlogger.Error(err),
		)
		if errors.Is(err, usecase.ErrInsufficientHistory) {
			return xhttp.UnavailableResponse(c, err.Error())
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ReportsEchoHandler) Bars(c echo.Context) error {
	const endpoint = "bars"
	start := time.Now()
	defer func() {
		metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 10, 5) {
		metrics.RateLimited.WithLabelValues(endpoint).Inc()
		return xhttp.TooManyRequestsResponse(c)
	}

	res, err := h.bars.GetLatest(c.Request().Context(), usecase.GetBarsParams{
		Symbol:    req.Symbol,
		N:         req.N,
		Timeframe: domrepo.NormalizeTimeframe(req.TF),
	})
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("bars usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Health reports whether the bar store answers pings.
func (h *ReportsEchoHandler) Health(c echo.Context) error {
	if err := h.reports.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.UnavailableResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, "ok")
}
