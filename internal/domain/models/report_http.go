package models

// Requests for report HTTP endpoints. Defined in domain for consistency and reuse.

type ReportRequest struct {
	Type string `query:"type" json:"type" default:"morning" validate:"oneof=morning eod"`
}

type RegimeRequest struct {
	// Weeks overrides the z-score lookback window used for the regime readout.
	Weeks int `query:"weeks" json:"weeks" default:"52" validate:"gte=12,lte=260"`
}

type FactorsRequest struct {
	Universe string `query:"universe" json:"universe" default:"fx" validate:"oneof=fx etf"`
}

type BarsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"252" validate:"gte=1,lte=5000"`
	TF     string `query:"tf" json:"tf" default:"1d" validate:"oneof=1d 1h"`
}
