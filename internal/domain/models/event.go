package models

// EventRow is one pair's vol-guided event signal. Unset fields mean the
// underlying value was not computable for the available history.
type EventRow struct {
	Pair          string   `json:"pair"`
	OldSpot       *float64 `json:"old_spot,omitempty"`
	NewSpot       *float64 `json:"new_spot,omitempty"`
	RV1W          *float64 `json:"rv_1w,omitempty"`
	RV1WChg       *float64 `json:"rv_1w_chg,omitempty"`
	RV1M          *float64 `json:"rv_1m,omitempty"`
	RV1MChg       *float64 `json:"rv_1m_chg,omitempty"`
	SpotReturnPct *float64 `json:"spot_return_pct,omitempty"`
	RetVsUSD      *float64 `json:"ret_vs_usd,omitempty"`
	VIXLevel      *float64 `json:"vix_level,omitempty"`
	VIXChg        *float64 `json:"vix_chg,omitempty"`
	Signal        string   `json:"signal_label"`
}

// Event scenario labels.
const (
	EventBearishCont  = "Bearish Cont."
	EventBearishContr = "Bearish Contr."
	EventBullishCont  = "Bullish Cont."
	EventBullishContr = "Bullish Contr."
)
