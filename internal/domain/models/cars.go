package models

// CARSRegime classifies the current week from cross-asset weekly z-scores.
type CARSRegime struct {
	IsShock    bool    `json:"is_shock"`
	EquityZ    float64 `json:"equity_z"`
	BondZ      float64 `json:"bond_z"`
	CommodityZ float64 `json:"commodity_z"`
	Label      string  `json:"regime_label"`
}

// Regime labels.
const (
	RegimeShock  = "Shock"
	RegimeNormal = "Normal"
)

// FactorRanking carries one currency's rolling correlations to the three
// cross-asset factors and its rank per factor. Within each rank column the
// ranks form a permutation of 1..N.
type FactorRanking struct {
	Currency      string  `json:"currency"`
	EquityCorr    float64 `json:"equity_corr"`
	RatesCorr     float64 `json:"rates_corr"`
	CommodityCorr float64 `json:"commodity_corr"`
	EquityRank    int     `json:"equity_rank"`
	RatesRank     int     `json:"rates_rank"`
	CommodityRank int     `json:"commodity_rank"`
}

// CARSSignal is the per-currency buy/sell/no-signal verdict.
type CARSSignal struct {
	Currency      string `json:"currency"`
	Signal        string `json:"signal_label"`
	EquityRank    int    `json:"equity_rank"`
	RatesRank     int    `json:"rates_rank"`
	CommodityRank int    `json:"commodity_rank"`
}

// CARSReport is the full cross-asset regime-switching output.
// PerformingFactor is "defensive" on shock weeks, otherwise the factor the
// signal ranking was driven by ("equity", "rates" or "commodity").
type CARSReport struct {
	Regime           CARSRegime      `json:"regime"`
	Rankings         []FactorRanking `json:"rankings"`
	Signals          []CARSSignal    `json:"signals"`
	PerformingFactor string          `json:"performing_factor"`
}
