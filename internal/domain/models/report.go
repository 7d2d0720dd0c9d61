package models

// Report types.
const (
	ReportMorning = "Morning FX Brief"
	ReportEOD     = "EOD FX Recap"
)

// MarketReport is the composite analytics report assembled per invocation.
// Sections the requested report type omits, or that lacked data, are nil.
// Per-instrument and per-section failures land in Errors keyed by stage;
// the rest of the report is still populated.
// Note: no transport (json encoding happens at the handler) or chart
// rendering concerns here.
type MarketReport struct {
	Type           string            `json:"report_type"`
	GeneratedAt    string            `json:"generated_at"`
	Technical      []TechnicalRow    `json:"technical_matrix"`
	Events         []EventRow        `json:"event_table"`
	CARS           *CARSReport       `json:"cars,omitempty"`
	SessionSummary *SessionSummary   `json:"timezone_summary,omitempty"`
	SessionHeatmap *SessionHeatmap   `json:"timezone_heatmap,omitempty"`
	FXFactors      *FXFactorReport   `json:"pca_fx,omitempty"`
	ETFFactors     *ETFFactorReport  `json:"pca_etf,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
}
