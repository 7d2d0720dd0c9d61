package service

import (
	"FXBrief/internal/domain/models"
)

// TechnicalAnalyzer scores trend positioning for one pair from its daily bars.
type TechnicalAnalyzer interface {
	AssessPair(pair string, daily models.Bars) models.TechnicalRow
}

// EventAnalyzer classifies one pair's volatility-guided event scenario.
type EventAnalyzer interface {
	ClassifyPair(pair string, daily models.Bars, vix models.Bars) models.EventRow
}

// RegimeClassifier runs the cross-asset regime-switching model over weekly
// proxy returns.
type RegimeClassifier interface {
	ClassifyRegime(equity, bonds, commodities models.Bars, weeks int) models.CARSRegime
	BuildReport(fx map[string]models.Bars, equity, bonds, commodities models.Bars) *models.CARSReport
}

// SessionAnalyzer decomposes recent hourly returns into trading-session
// buckets. Pairs without data yield zero rows rather than being dropped.
type SessionAnalyzer interface {
	Summary(hourly map[string]models.Bars, lookbackDays int) models.SessionSummary
	Heatmap(hourly map[string]models.Bars, lookbackDays int) models.SessionHeatmap
}

// FXFactorAnalyzer runs the PCA factor decomposition of G10 FX returns.
type FXFactorAnalyzer interface {
	BuildReport(daily map[string]models.Bars) *models.FXFactorReport
}

// ETFFactorAnalyzer runs the PCA factor decomposition of the ETF universe.
type ETFFactorAnalyzer interface {
	BuildReport(daily map[string]models.Bars) *models.ETFFactorReport
}
