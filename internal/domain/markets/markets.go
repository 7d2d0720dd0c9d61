// Package markets holds the instrument tables and quote conventions the
// analytics engines are parameterized with.
package markets

import "strings"

// Universe is the resolved instrument configuration handed to the engines.
type Universe struct {
	G10Pairs    []string
	EMAsiaPairs []string
	ETFs        []string
	SafeHavens  []string

	// Cross-asset proxy symbols.
	Equity      string
	Bonds       string
	Commodities string
	VIX         string
}

// Default instrument tables. Config may override any of them.
var (
	DefaultG10Pairs = []string{
		"EURUSD", "GBPUSD", "AUDUSD", "NZDUSD",
		"USDJPY", "USDCHF", "USDCAD", "USDSEK", "USDNOK",
	}

	DefaultEMAsiaPairs = []string{
		"USDSGD", "USDCNH", "USDKRW", "USDTWD", "USDTHB",
		"USDPHP", "USDINR", "USDIDR", "USDMYR",
	}

	// DefaultETFs spans equities, bonds, commodities, FX, crypto and
	// volatility so the ETF PCA sees genuinely distinct return drivers.
	DefaultETFs = []string{
		"SPY", "QQQ", "IWM", "EFA", "EEM", "EWJ", "EWG", "EWU", "FXI", "EWZ",
		"TLT", "IEF", "HYG", "LQD", "EMB",
		"DBC", "GLD", "SLV", "USO",
		"UUP", "FXE", "FXY", "FXB",
		"BITO", "VIXY",
	}

	DefaultSafeHavens = []string{"JPY", "CHF"}
)

// Default cross-asset proxy symbols.
const (
	DefaultEquityProxy    = "SPY"
	DefaultBondProxy      = "TLT"
	DefaultCommodityProxy = "DBC"
	DefaultVIXProxy       = "VIXY"
)

// DefaultUniverse returns the stock instrument tables.
func DefaultUniverse() Universe {
	return Universe{
		G10Pairs:    DefaultG10Pairs,
		EMAsiaPairs: DefaultEMAsiaPairs,
		ETFs:        DefaultETFs,
		SafeHavens:  DefaultSafeHavens,
		Equity:      DefaultEquityProxy,
		Bonds:       DefaultBondProxy,
		Commodities: DefaultCommodityProxy,
		VIX:         DefaultVIXProxy,
	}
}

// AllFXPairs returns the G10 pairs followed by the EM Asia pairs, preserving
// table order. The report iterates instruments in this order.
func (u Universe) AllFXPairs() []string {
	out := make([]string, 0, len(u.G10Pairs)+len(u.EMAsiaPairs))
	out = append(out, u.G10Pairs...)
	out = append(out, u.EMAsiaPairs...)
	return out
}

// IsSafeHaven reports whether the currency is treated as defensive during
// shock weeks.
func (u Universe) IsSafeHaven(currency string) bool {
	for _, c := range u.SafeHavens {
		if c == currency {
			return true
		}
	}
	return false
}

// ReturnSign converts a pair's spot return into a foreign-currency-vs-USD
// return: +1 for XXXUSD quotes, -1 for USDXXX quotes where a rising spot
// means the foreign currency weakened.
func ReturnSign(pair string) float64 {
	if strings.HasSuffix(pair, "USD") {
		return 1
	}
	return -1
}

// CurrencyOf extracts the non-USD leg of a pair ("USDJPY" -> "JPY",
// "EURUSD" -> "EUR").
func CurrencyOf(pair string) string {
	if strings.HasPrefix(pair, "USD") && len(pair) > 3 {
		return pair[3:]
	}
	return strings.TrimSuffix(pair, "USD")
}
