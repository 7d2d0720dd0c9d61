package di

import (
	"fmt"
	"net"
	"strconv"

	"FXBrief/internal/analytics/cars"
	"FXBrief/internal/analytics/event"
	"FXBrief/internal/analytics/factor"
	"FXBrief/internal/analytics/session"
	"FXBrief/internal/analytics/technical"
	"FXBrief/internal/domain/markets"
	domrepo "FXBrief/internal/domain/repository"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/internal/handler/api"
	internalrepo "FXBrief/internal/repository"
	"FXBrief/internal/service/barcache"
	"FXBrief/internal/usecase"
	"FXBrief/pkg/cache"
	pkgch "FXBrief/pkg/clickhouse"
	"FXBrief/pkg/config"
	xhttp "FXBrief/pkg/http"
	applogger "FXBrief/pkg/logger"
	"FXBrief/pkg/metrics"
	"FXBrief/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideUniverse resolves the instrument tables: config overrides over the
// domain defaults.
func ProvideUniverse(cfg *config.Config) markets.Universe {
	u := markets.DefaultUniverse()
	if len(cfg.Markets.G10Pairs) > 0 {
		u.G10Pairs = cfg.Markets.G10Pairs
	}
	if len(cfg.Markets.EMAsiaPairs) > 0 {
		u.EMAsiaPairs = cfg.Markets.EMAsiaPairs
	}
	if len(cfg.Markets.ETFs) > 0 {
		u.ETFs = cfg.Markets.ETFs
	}
	if len(cfg.Markets.SafeHavens) > 0 {
		u.SafeHavens = cfg.Markets.SafeHavens
	}
	if cfg.Markets.EquityProxy != "" {
		u.Equity = cfg.Markets.EquityProxy
	}
	if cfg.Markets.BondProxy != "" {
		u.Bonds = cfg.Markets.BondProxy
	}
	if cfg.Markets.CommodityProxy != "" {
		u.Commodities = cfg.Markets.CommodityProxy
	}
	if cfg.Markets.VIXProxy != "" {
		u.VIX = cfg.Markets.VIXProxy
	}
	return u
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient connects to the bar database. A blank host skips
// the connection entirely; the bar source then falls back to the in-memory
// store so one-shot runs need no infrastructure.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(cfg.ClickHouse.MaxOpenConns, cfg.ClickHouse.MaxIdleConns),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideCache creates the bar-series cache: layered memory+redis when redis
// is enabled, plain in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		host, portStr = cfg.Cache.Redis.Addr, "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis addr %q: %w", cfg.Cache.Redis.Addr, err)
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}

	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredPromoteTTL(cfg.Cache.PromoteTTL),
	), nil
}

// ProvideBarSource builds the bar store chain: ClickHouse (or in-memory when
// no host is configured) behind the read-through series cache.
func ProvideBarSource(cfg *config.Config, ch *pkgch.Client, c cache.Service, l *applogger.Logger) domrepo.BarSource {
	var store domrepo.BarSource
	if ch != nil {
		chStore := internalrepo.NewCHBarStore(ch)
		chStore.SetLogger(l)
		store = chStore
	} else {
		store = internalrepo.NewMemoryBarStore()
	}

	return barcache.New(barcache.Config{
		DailyTTL:  cfg.Cache.DailyTTL,
		HourlyTTL: cfg.Cache.HourlyTTL,
	}, store, c, l)
}

// ProvideTechnicalEngine creates the positioning matrix engine.
func ProvideTechnicalEngine(cfg *config.Config, l *applogger.Logger) domsvc.TechnicalAnalyzer {
	t := cfg.Analytics.Technical
	ec := technical.Config{
		MinBars:           t.MinBars,
		TrendHistoryBars:  t.TrendHistoryBars,
		MAAUpper:          t.MAAUpper,
		MAALower:          t.MAALower,
		UDWindow:          t.UDWindow,
		UDLookback:        t.UDLookback,
		RSWeeklyWindow:    t.RSWeeklyWindow,
		RSPercentileWeeks: t.RSPercentileWeeks,
		ExtremeHigh:       t.ExtremeHigh,
		ExtremeLow:        t.ExtremeLow,
		MidBand:           t.MidBand,
		ADXPeriod:         t.ADXPeriod,
		ADXRangeMax:       t.ADXRangeMax,
		ADXTrendMin:       t.ADXTrendMin,
		BollingerWindow:   t.BollingerWindow,
		BollingerStd:      t.BollingerStd,
		SRLookbacks:       t.SRLookbacks,
	}
	if len(ec.SRLookbacks) == 0 {
		ec.SRLookbacks = technical.DefaultConfig().SRLookbacks
	}
	return technical.NewEngine(ec, l)
}

// ProvideEventEngine creates the event classification engine.
func ProvideEventEngine(cfg *config.Config, l *applogger.Logger) domsvc.EventAnalyzer {
	e := cfg.Analytics.Event
	return event.NewEngine(event.Config{
		MinBars:       e.MinBars,
		RV1WWindow:    e.RV1WWindow,
		RV1MWindow:    e.RV1MWindow,
		ChangeLag:     e.ChangeLag,
		SpotThreshold: e.SpotThreshold,
		RVRise:        e.RVRise,
		RVSharpRise:   e.RVSharpRise,
		RVFall:        e.RVFall,
	}, l)
}

// ProvideCARSEngine creates the cross-asset regime engine.
func ProvideCARSEngine(cfg *config.Config, u markets.Universe, l *applogger.Logger) domsvc.RegimeClassifier {
	c := cfg.Analytics.CARS
	return cars.NewEngine(cars.Config{
		ZWeeks:            c.ZWeeks,
		CorrWeeks:         c.CorrWeeks,
		ShockEquityZ:      c.ShockEquityZ,
		ShockBondZ:        c.ShockBondZ,
		ShockCommodityZ:   c.ShockCommodityZ,
		CommodityOverlayZ: c.CommodityOverlayZ,
		TopN:              c.TopN,
		PerformingFactor:  c.PerformingFactor,
	}, u, l)
}

// ProvideSessionEngine creates the trading-session decomposition engine.
func ProvideSessionEngine(cfg *config.Config, u markets.Universe, l *applogger.Logger) domsvc.SessionAnalyzer {
	ec := session.DefaultConfig()
	if len(cfg.Analytics.Session.Zones) > 0 {
		ec.Zones = sessionBuckets(cfg.Analytics.Session.Zones)
	}
	if len(cfg.Analytics.Session.Slots) > 0 {
		ec.Slots = sessionBuckets(cfg.Analytics.Session.Slots)
	}
	return session.NewEngine(ec, u, l)
}

func sessionBuckets(in []config.SessionBucket) []session.Bucket {
	out := make([]session.Bucket, 0, len(in))
	for _, b := range in {
		out = append(out, session.Bucket{Name: b.Name, Start: b.Start, End: b.End})
	}
	return out
}

// ProvideFXFactorEngine creates the G10 PCA engine.
func ProvideFXFactorEngine(cfg *config.Config, u markets.Universe, l *applogger.Logger) domsvc.FXFactorAnalyzer {
	f := cfg.Analytics.FXFactors
	return factor.NewFXEngine(factor.FXConfig{
		Window:        f.Window,
		ZWindow:       f.ZWindow,
		NComponents:   f.NComponents,
		DominantShare: f.DominantShare,
		PC1Threshold:  f.PC1Threshold,
		DimThreshold:  f.DimThreshold,
	}, u, l)
}

// ProvideETFFactorEngine creates the ETF PCA engine.
func ProvideETFFactorEngine(cfg *config.Config, u markets.Universe, l *applogger.Logger) domsvc.ETFFactorAnalyzer {
	f := cfg.Analytics.ETFFactors
	return factor.NewETFEngine(factor.ETFConfig{
		Window:       f.Window,
		NComponents:  f.NComponents,
		TopLoadings:  f.TopLoadings,
		LabeledPCs:   f.LabeledPCs,
		PC1Threshold: f.PC1Threshold,
		DimThreshold: f.DimThreshold,
	}, u, l)
}

// ProvideReportUseCase assembles the report orchestrator.
func ProvideReportUseCase(
	cfg *config.Config,
	store domrepo.BarSource,
	u markets.Universe,
	technicalEngine domsvc.TechnicalAnalyzer,
	eventEngine domsvc.EventAnalyzer,
	carsEngine domsvc.RegimeClassifier,
	sessionEngine domsvc.SessionAnalyzer,
	fxEngine domsvc.FXFactorAnalyzer,
	etfEngine domsvc.ETFFactorAnalyzer,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(usecase.ReportConfig{
		DailyBars:          cfg.Report.DailyBars,
		HourlyBars:         cfg.Report.HourlyBars,
		MorningSessionDays: cfg.Report.MorningSessionDays,
		EODSessionDays:     cfg.Report.EODSessionDays,
		RegimeWeeks:        cfg.Report.RegimeWeeks,
		Timeout:            cfg.Report.Timeout,
	}, store, u, technicalEngine, eventEngine, carsEngine, sessionEngine, fxEngine, etfEngine, m, l)
}

// ProvideBarsUseCase creates the raw bar retrieval usecase.
func ProvideBarsUseCase(store domrepo.BarSource) *usecase.BarsUseCase {
	return usecase.NewBarsUseCase(store)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, reports *usecase.ReportUseCase, bars *usecase.BarsUseCase) xhttp.Handler {
	return api.NewReportsEchoHandler(l, reports, bars)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h xhttp.Handler,
	reports *usecase.ReportUseCase,
	ch *pkgch.Client,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, h, reports, ch, c)
}
