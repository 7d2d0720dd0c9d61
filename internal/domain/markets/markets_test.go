package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnSign(t *testing.T) {
	assert.Equal(t, 1.0, ReturnSign("EURUSD"))
	assert.Equal(t, 1.0, ReturnSign("AUDUSD"))
	assert.Equal(t, -1.0, ReturnSign("USDJPY"))
	assert.Equal(t, -1.0, ReturnSign("USDSEK"))
	assert.Equal(t, -1.0, ReturnSign("USDCNH"))
}

func TestCurrencyOf(t *testing.T) {
	assert.Equal(t, "EUR", CurrencyOf("EURUSD"))
	assert.Equal(t, "JPY", CurrencyOf("USDJPY"))
	assert.Equal(t, "CNH", CurrencyOf("USDCNH"))
	assert.Equal(t, "NZD", CurrencyOf("NZDUSD"))
}

func TestDefaultUniverse(t *testing.T) {
	u := DefaultUniverse()

	assert.Len(t, u.G10Pairs, 9)
	assert.Len(t, u.EMAsiaPairs, 9)
	assert.Len(t, u.ETFs, 25)
	assert.Equal(t, []string{"JPY", "CHF"}, u.SafeHavens)
	assert.Equal(t, "SPY", u.Equity)
	assert.Equal(t, "TLT", u.Bonds)
	assert.Equal(t, "DBC", u.Commodities)
	assert.Equal(t, "VIXY", u.VIX)

	// every configured pair has a resolvable non-USD leg and a sign
	for _, pair := range u.AllFXPairs() {
		assert.NotEmpty(t, CurrencyOf(pair), pair)
		assert.NotZero(t, ReturnSign(pair), pair)
	}
}

func TestAllFXPairsOrder(t *testing.T) {
	u := DefaultUniverse()
	all := u.AllFXPairs()

	assert.Len(t, all, len(u.G10Pairs)+len(u.EMAsiaPairs))
	assert.Equal(t, "EURUSD", all[0])
	assert.Equal(t, u.EMAsiaPairs[0], all[len(u.G10Pairs)])
}

func TestIsSafeHaven(t *testing.T) {
	u := DefaultUniverse()

	assert.True(t, u.IsSafeHaven("JPY"))
	assert.True(t, u.IsSafeHaven("CHF"))
	assert.False(t, u.IsSafeHaven("EUR"))
	assert.False(t, u.IsSafeHaven("SEK"))
}
