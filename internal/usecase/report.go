package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
)

// Report type keys accepted by Generate.
const (
	ReportTypeMorning = "morning"
	ReportTypeEOD     = "eod"
)

// ErrInsufficientHistory reports that too few instruments had aligned
// history for a factor decomposition.
var ErrInsufficientHistory = errors.New("insufficient aligned history")

const timestampLayout = "2006-01-02 15:04"

// ReportConfig parameterizes report assembly.
type ReportConfig struct {
	DailyBars          int           // daily bars loaded per instrument
	HourlyBars         int           // hourly bars loaded per pair
	MorningSessionDays int           // session lookback for the morning brief
	EODSessionDays     int           // session lookback for the EOD recap
	RegimeWeeks        int           // default z-score window for Regime
	Timeout            time.Duration // budget for one full report
}

// DefaultReportConfig returns lookbacks that cover the deepest engine
// requirement (504-bar range scans) with warmup to spare.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		DailyBars:          600,
		HourlyBars:         30 * 24,
		MorningSessionDays: 5,
		EODSessionDays:     1,
		RegimeWeeks:        52,
		Timeout:            60 * time.Second,
	}
}

// ReportUseCase assembles composite market reports from cached bars. All
// sections run sequentially; per-instrument and per-section failures are
// collected rather than aborting the report.
type ReportUseCase struct {
	cfg        ReportConfig
	store      domrepo.BarSource
	universe   markets.Universe
	technical  domsvc.TechnicalAnalyzer
	events     domsvc.EventAnalyzer
	cars       domsvc.RegimeClassifier
	sessions   domsvc.SessionAnalyzer
	fxFactors  domsvc.FXFactorAnalyzer
	etfFactors domsvc.ETFFactorAnalyzer
	metrics    domrepo.Metrics
	log        *logger.Logger
}

func NewReportUseCase(
	cfg ReportConfig,
	store domrepo.BarSource,
	universe markets.Universe,
	technical domsvc.TechnicalAnalyzer,
	events domsvc.EventAnalyzer,
	cars domsvc.RegimeClassifier,
	sessions domsvc.SessionAnalyzer,
	fxFactors domsvc.FXFactorAnalyzer,
	etfFactors domsvc.ETFFactorAnalyzer,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		cfg:        cfg,
		store:      store,
		universe:   universe,
		technical:  technical,
		events:     events,
		cars:       cars,
		sessions:   sessions,
		fxFactors:  fxFactors,
		etfFactors: etfFactors,
		metrics:    metrics,
		log:        log,
	}
}

// Generate builds the composite report for "morning" or "eod".
func (uc *ReportUseCase) Generate(ctx context.Context, reportType string) (*models.MarketReport, error) {
	var (
		title       string
		sessionDays int
		withHeatmap bool
	)
	switch reportType {
	case ReportTypeMorning:
		title, sessionDays, withHeatmap = models.ReportMorning, uc.cfg.MorningSessionDays, true
	case ReportTypeEOD:
		title, sessionDays, withHeatmap = models.ReportEOD, uc.cfg.EODSessionDays, false
	default:
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	start := time.Now()
	report := &models.MarketReport{
		Type:        title,
		GeneratedAt: time.Now().UTC().Format(timestampLayout) + " UTC",
		Errors:      map[string]string{},
	}

	pairs := uc.universe.AllFXPairs()
	daily := uc.loadDaily(ctx, pairs, report.Errors)
	vix := uc.loadProxy(ctx, uc.universe.VIX, report.Errors)

	report.Technical = uc.technicalSection(daily, pairs)
	report.Events = uc.eventSection(daily, vix, pairs)

	equity := uc.loadProxy(ctx, uc.universe.Equity, report.Errors)
	bonds := uc.loadProxy(ctx, uc.universe.Bonds, report.Errors)
	commodities := uc.loadProxy(ctx, uc.universe.Commodities, report.Errors)
	report.CARS = uc.cars.BuildReport(daily, equity, bonds, commodities)

	hourly := uc.loadHourly(ctx, pairs, report.Errors)
	summary := uc.sessions.Summary(hourly, sessionDays)
	report.SessionSummary = &summary
	if withHeatmap {
		heatmap := uc.sessions.Heatmap(hourly, sessionDays)
		report.SessionHeatmap = &heatmap
	}

	report.FXFactors = uc.fxFactors.BuildReport(daily)
	etfDaily := uc.loadDaily(ctx, uc.universe.ETFs, report.Errors)
	report.ETFFactors = uc.etfFactors.BuildReport(etfDaily)

	if len(report.Errors) == 0 {
		report.Errors = nil
	}

	if uc.metrics != nil {
		uc.metrics.RecordReport(reportType)
		uc.metrics.RecordLatency("report:"+reportType, time.Since(start).Seconds())
	}
	if uc.log != nil {
		uc.log.Info("report generated",
			logger.String("type", reportType),
			logger.Int("pairs", len(pairs)),
			logger.Int("errors", len(report.Errors)),
			logger.Duration("took", time.Since(start)))
	}
	return report, nil
}

// Regime runs just the cross-asset regime readout over the given z-score
// window in weeks.
func (uc *ReportUseCase) Regime(ctx context.Context, weeks int) (*models.CARSRegime, error) {
	if weeks <= 0 {
		weeks = uc.cfg.RegimeWeeks
	}
	equity, err := uc.store.GetLatestNBars(ctx, uc.universe.Equity, uc.cfg.DailyBars, domrepo.TF1d)
	if err != nil {
		return nil, fmt.Errorf("load equity proxy: %w", err)
	}
	bonds, err := uc.store.GetLatestNBars(ctx, uc.universe.Bonds, uc.cfg.DailyBars, domrepo.TF1d)
	if err != nil {
		return nil, fmt.Errorf("load bond proxy: %w", err)
	}
	commodities, err := uc.store.GetLatestNBars(ctx, uc.universe.Commodities, uc.cfg.DailyBars, domrepo.TF1d)
	if err != nil {
		return nil, fmt.Errorf("load commodity proxy: %w", err)
	}

	regime := uc.cars.ClassifyRegime(equity, bonds, commodities, weeks)
	return &regime, nil
}

// FXFactors runs just the G10 factor decomposition.
func (uc *ReportUseCase) FXFactors(ctx context.Context) (*models.FXFactorReport, error) {
	daily := uc.loadDaily(ctx, uc.universe.G10Pairs, map[string]string{})
	report := uc.fxFactors.BuildReport(daily)
	if report == nil {
		return nil, fmt.Errorf("fx factor report: %w", ErrInsufficientHistory)
	}
	return report, nil
}

// ETFFactors runs just the ETF factor decomposition.
func (uc *ReportUseCase) ETFFactors(ctx context.Context) (*models.ETFFactorReport, error) {
	daily := uc.loadDaily(ctx, uc.universe.ETFs, map[string]string{})
	report := uc.etfFactors.BuildReport(daily)
	if report == nil {
		return nil, fmt.Errorf("etf factor report: %w", ErrInsufficientHistory)
	}
	return report, nil
}

// Health pings the bar store.
func (uc *ReportUseCase) Health(ctx context.Context) error {
	if err := uc.store.Health(ctx); err != nil {
		return fmt.Errorf("bar store: %w", err)
	}
	return nil
}

func (uc *ReportUseCase) technicalSection(daily map[string]models.Bars, pairs []string) []models.TechnicalRow {
	rows := make([]models.TechnicalRow, 0, len(pairs))
	for _, pair := range pairs {
		row := uc.technical.AssessPair(pair, daily[pair])
		if row.Spot != nil && uc.metrics != nil {
			uc.metrics.RecordSpot(pair, *row.Spot)
		}
		rows = append(rows, row)
	}
	if uc.metrics != nil {
		uc.metrics.RecordInstruments("technical", len(rows))
	}
	return rows
}

func (uc *ReportUseCase) eventSection(daily map[string]models.Bars, vix models.Bars, pairs []string) []models.EventRow {
	rows := make([]models.EventRow, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, uc.events.ClassifyPair(pair, daily[pair], vix))
	}
	if uc.metrics != nil {
		uc.metrics.RecordInstruments("events", len(rows))
	}
	return rows
}

// loadDaily fetches daily bars per symbol. Failures land in errs under
// "daily:<symbol>" and the symbol is simply absent from the result; the
// engines render such instruments as not-applicable rows.
func (uc *ReportUseCase) loadDaily(ctx context.Context, symbols []string, errs map[string]string) map[string]models.Bars {
	out := make(map[string]models.Bars, len(symbols))
	for _, sym := range symbols {
		bars, err := uc.store.GetLatestNBars(ctx, sym, uc.cfg.DailyBars, domrepo.TF1d)
		if err != nil {
			errs["daily:"+sym] = err.Error()
			if uc.metrics != nil {
				uc.metrics.RecordError("daily_bars")
			}
			if uc.log != nil {
				uc.log.Warn("daily bars unavailable",
					logger.String("symbol", sym), logger.Error(err))
			}
			continue
		}
		out[sym] = bars
	}
	return out
}

func (uc *ReportUseCase) loadHourly(ctx context.Context, symbols []string, errs map[string]string) map[string]models.Bars {
	out := make(map[string]models.Bars, len(symbols))
	for _, sym := range symbols {
		bars, err := uc.store.GetLatestNBars(ctx, sym, uc.cfg.HourlyBars, domrepo.TF1h)
		if err != nil {
			errs["hourly:"+sym] = err.Error()
			if uc.metrics != nil {
				uc.metrics.RecordError("hourly_bars")
			}
			if uc.log != nil {
				uc.log.Warn("hourly bars unavailable",
					logger.String("symbol", sym), logger.Error(err))
			}
			continue
		}
		out[sym] = bars
	}
	return out
}

func (uc *ReportUseCase) loadProxy(ctx context.Context, symbol string, errs map[string]string) models.Bars {
	bars, err := uc.store.GetLatestNBars(ctx, symbol, uc.cfg.DailyBars, domrepo.TF1d)
	if err != nil {
		errs["proxy:"+symbol] = err.Error()
		if uc.metrics != nil {
			uc.metrics.RecordError("proxy_bars")
		}
		if uc.log != nil {
			uc.log.Warn("proxy bars unavailable",
				logger.String("symbol", symbol), logger.Error(err))
		}
		return nil
	}
	return bars
}
