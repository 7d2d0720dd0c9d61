package models

// TechnicalRow is one pair's positioning snapshot in the technical matrix.
// Recomputed from scratch on every report; no history is retained.
type TechnicalRow struct {
	Pair           string   `json:"pair"`
	Spot           *float64 `json:"spot,omitempty"`
	TrendArrow     string   `json:"trend_arrow"`
	Signal         string   `json:"signal_label"`
	MAAScore       *float64 `json:"maa_score,omitempty"`
	UDPercentile   *float64 `json:"ud_percentile,omitempty"`
	RSPercentile   *float64 `json:"rs_percentile,omitempty"`
	ADXTrend       string   `json:"adx_trend_label"`
	Bollinger      string   `json:"bollinger_label"`
	NextSupport    *float64 `json:"next_support,omitempty"`
	NextResistance *float64 `json:"next_resistance,omitempty"`
}

// Positioning signal labels.
const (
	SignalBullish   = "Bullish"
	SignalSlBullish = "Sl. Bullish"
	SignalBearish   = "Bearish"
	SignalSlBearish = "Sl. Bearish"
	SignalNone      = "No Signal"
	SignalNA        = "N/A"
)

// Trend arrows for the positioning trend column.
const (
	TrendUp       = "↑"
	TrendDown     = "↓"
	TrendSideways = "↔"
)

// ADX trend labels.
const (
	ADXRange      = "Range"
	ADXTransition = "Transition"
	ADXUptrend    = "Uptrend"
	ADXDowntrend  = "Downtrend"
)

// Bollinger band position labels.
const (
	BollingerUpper = "Upper"
	BollingerLower = "Lower"
	BollingerNone  = "None"
)
