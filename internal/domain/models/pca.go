package models

// PCAResult holds the eigendecomposition of an asset return-correlation
// matrix. Eigenvalues are descending and non-negative; Loadings has one row
// per ticker and one column per retained component.
type PCAResult struct {
	Tickers            []string    `json:"tickers"`
	NAssets            int         `json:"n_assets"`
	Eigenvalues        []float64   `json:"eigenvalues"`
	VarianceExplained  []float64   `json:"variance_explained"`
	CumulativeVariance []float64   `json:"cumulative_variance"`
	Loadings           [][]float64 `json:"loadings"`
}

// LoadingEntry pairs a ticker with its loading on one component.
type LoadingEntry struct {
	Ticker string  `json:"ticker"`
	Value  float64 `json:"value"`
}

// LoadingExtremes carries the strongest positive and negative loadings of a
// component, both sorted descending by value.
type LoadingExtremes struct {
	Top    []LoadingEntry `json:"top"`
	Bottom []LoadingEntry `json:"bottom"`
}

// ETFFactorReport is the PCA factor decomposition of the ETF universe.
type ETFFactorReport struct {
	PCA          PCAResult                  `json:"pca"`
	EffectiveDim float64                    `json:"effective_dimensionality"`
	Regime       string                     `json:"regime_label"`
	Window       int                        `json:"window"`
	TopLoadings  map[string]LoadingExtremes `json:"top_loadings,omitempty"`
}

// FXFactorReport is the PCA factor decomposition of G10 FX returns.
// PCScores/PCZScores hold the latest observation's projection per component;
// FactorLabels is keyed by component name ("PC1"...).
type FXFactorReport struct {
	PCA          PCAResult         `json:"pca"`
	EffectiveDim float64           `json:"effective_dimensionality"`
	Regime       string            `json:"regime_label"`
	Window       int               `json:"window"`
	PCScores     []float64         `json:"pc_scores"`
	PCZScores    []float64         `json:"pc_zscores"`
	FactorLabels map[string]string `json:"factor_labels"`
}

// PCA regime labels.
const (
	PCARegimeCollapse = "Dimensionality Collapse"
	PCARegimeNormal   = "Normal"
)
