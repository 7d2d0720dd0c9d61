package models

// SessionRow maps bucket name -> cumulative % return for one pair,
// sign-corrected to the foreign-currency-vs-USD convention.
type SessionRow struct {
	Pair    string             `json:"pair"`
	Returns map[string]float64 `json:"returns"`
}

// SessionSummary decomposes recent FX returns into the three regional
// trading sessions. Buckets preserves display order.
type SessionSummary struct {
	Buckets []string     `json:"buckets"`
	Rows    []SessionRow `json:"rows"`
}

// SessionHeatmap is the granular 3-hour-slot variant of SessionSummary.
type SessionHeatmap struct {
	Buckets []string     `json:"buckets"`
	Rows    []SessionRow `json:"rows"`
}
