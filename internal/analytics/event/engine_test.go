package event

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXBrief/internal/analytics/seriestest"
	"FXBrief/internal/domain/models"
)

// flatThen holds level for flat bars, then applies moves geometric steps.
func flatThen(flat int, level float64, moves int, factor float64) []float64 {
	closes := make([]float64, 0, flat+moves)
	c := level
	for i := 0; i < flat; i++ {
		closes = append(closes, c)
	}
	for i := 0; i < moves; i++ {
		c *= factor
		closes = append(closes, c)
	}
	return closes
}

// choppyThen alternates level and level*(1+amp) for choppy bars (choppy must
// be odd so the chop ends back at level), then applies moves geometric steps.
func choppyThen(choppy int, level, amp float64, moves int, factor float64) []float64 {
	closes := make([]float64, 0, choppy+moves)
	for i := 0; i < choppy; i++ {
		c := level
		if i%2 == 1 {
			c = level * (1 + amp)
		}
		closes = append(closes, c)
	}
	c := level
	for i := 0; i < moves; i++ {
		c *= factor
		closes = append(closes, c)
	}
	return closes
}

func TestClassifyPairShortSeriesIsNA(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	row := e.ClassifyPair("EURUSD", seriestest.DailyRamp(29, 1.0, 0.001), seriestest.VIXLike(29, 1))

	assert.Equal(t, "EURUSD", row.Pair)
	assert.Equal(t, models.SignalNA, row.Signal)
	assert.Nil(t, row.OldSpot)
	assert.Nil(t, row.NewSpot)
	assert.Nil(t, row.RV1M)
	assert.Nil(t, row.RV1MChg)
	assert.Nil(t, row.SpotReturnPct)
	assert.Nil(t, row.VIXLevel)
	assert.Nil(t, row.VIXChg)
}

func TestClassifyPairBearishContinuation(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	// flat month then a five-day slide: spot down ~2%, 1m vol up from zero,
	// VIX grinding higher
	daily := seriestest.DailyFromCloses(flatThen(35, 1.0, 5, 0.996))
	vix := seriestest.DailyRamp(40, 18, 0.05)

	row := e.ClassifyPair("EURUSD", daily, vix)

	assert.Equal(t, models.EventBearishCont, row.Signal)

	require.NotNil(t, row.OldSpot)
	require.NotNil(t, row.NewSpot)
	assert.InDelta(t, 1.0, *row.OldSpot, 1e-12)
	assert.InDelta(t, math.Pow(0.996, 5), *row.NewSpot, 1e-12)

	require.NotNil(t, row.SpotReturnPct)
	assert.InDelta(t, -1.98, *row.SpotReturnPct, 1e-9)

	// EURUSD quotes USD per EUR, so the USD-relative return is the raw one
	require.NotNil(t, row.RetVsUSD)
	assert.InDelta(t, *row.SpotReturnPct, *row.RetVsUSD, 1e-12)

	require.NotNil(t, row.RV1MChg)
	assert.InDelta(t, 2.78, *row.RV1MChg, 0.01)

	require.NotNil(t, row.VIXChg)
	assert.InDelta(t, 0.25, *row.VIXChg, 1e-9)
	require.NotNil(t, row.VIXLevel)
	assert.InDelta(t, 19.95, *row.VIXLevel, 0.1)
}

func TestClassifyPairBearishContrarian(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	// flat month then a sharp five-day rally: stretched spot plus a vol spike
	daily := seriestest.DailyFromCloses(flatThen(35, 100.0, 5, 1.005))
	vix := seriestest.DailyFlat(40, 18, 2)

	row := e.ClassifyPair("USDJPY", daily, vix)

	assert.Equal(t, models.EventBearishContr, row.Signal)

	require.NotNil(t, row.SpotReturnPct)
	assert.InDelta(t, 2.53, *row.SpotReturnPct, 1e-9)

	// USDJPY strength is a USD gain, so the USD-relative return flips sign
	require.NotNil(t, row.RetVsUSD)
	assert.InDelta(t, -2.53, *row.RetVsUSD, 1e-9)

	require.NotNil(t, row.RV1MChg)
	assert.Greater(t, *row.RV1MChg, 1.0)
}

func TestClassifyPairBullishContinuation(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	// choppy month then a steady grind higher: spot up over 1% while 1m vol
	// compresses hard
	daily := seriestest.DailyFromCloses(choppyThen(25, 1.0, 0.02, 10, 1.0025))
	vix := seriestest.DailyFlat(35, 18, 3)

	row := e.ClassifyPair("EURUSD", daily, vix)

	assert.Equal(t, models.EventBullishCont, row.Signal)

	require.NotNil(t, row.SpotReturnPct)
	assert.Greater(t, *row.SpotReturnPct, 1.0)
	require.NotNil(t, row.RV1MChg)
	assert.Less(t, *row.RV1MChg, -0.2)
}

func TestClassifyPairBullishContrarian(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	// choppy month then an orderly decline with vol compressing and VIX
	// falling: capitulation exhausted
	daily := seriestest.DailyFromCloses(choppyThen(25, 1.0, 0.02, 10, 0.9975))
	vix := seriestest.DailyRamp(35, 25, -0.1)

	row := e.ClassifyPair("EURUSD", daily, vix)

	assert.Equal(t, models.EventBullishContr, row.Signal)

	require.NotNil(t, row.SpotReturnPct)
	assert.Less(t, *row.SpotReturnPct, -1.0)
	require.NotNil(t, row.RV1MChg)
	assert.Less(t, *row.RV1MChg, -0.2)
	require.NotNil(t, row.VIXChg)
	assert.Less(t, *row.VIXChg, 0.0)
}

func TestClassifyPairFlatIsNoSignal(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	daily := seriestest.DailyFromCloses(flatThen(40, 1.0, 0, 1.0))
	vix := seriestest.DailyFlat(40, 18, 4)

	row := e.ClassifyPair("EURUSD", daily, vix)

	assert.Equal(t, models.SignalNone, row.Signal)
	require.NotNil(t, row.RV1M)
	assert.Equal(t, 0.0, *row.RV1M)
	require.NotNil(t, row.RV1MChg)
	assert.Equal(t, 0.0, *row.RV1MChg)
	require.NotNil(t, row.SpotReturnPct)
	assert.Equal(t, 0.0, *row.SpotReturnPct)
}

func TestClassifyPairShortVIXNeutralizesConfirmation(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	// the bearish-continuation setup, but without enough VIX history the
	// confirmation leg stays neutral and nothing fires
	daily := seriestest.DailyFromCloses(flatThen(35, 1.0, 5, 0.996))
	vix := seriestest.VIXLike(5, 5)

	row := e.ClassifyPair("EURUSD", daily, vix)

	assert.Equal(t, models.SignalNone, row.Signal)
	assert.Nil(t, row.VIXLevel)
	require.NotNil(t, row.VIXChg)
	assert.Equal(t, 0.0, *row.VIXChg)
}

func TestClassifyRuleOrder(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	cases := []struct {
		name    string
		spotRet float64
		rv1mChg float64
		vixChg  float64
		want    string
	}{
		{"bearish cont", -1.5, 0.6, 0.1, models.EventBearishCont},
		{"bearish cont needs vix up", -1.5, 0.6, 0.0, models.SignalNone},
		{"bearish contr", 1.5, 1.1, 0.0, models.EventBearishContr},
		{"rally with mild vol rise", 1.5, 0.8, 0.0, models.SignalNone},
		{"bullish cont", 1.5, -0.3, 0.0, models.EventBullishCont},
		{"bullish contr", -1.5, -0.3, -0.1, models.EventBullishContr},
		{"bullish contr needs vix down", -1.5, -0.3, 0.1, models.SignalNone},
		{"spot at threshold", 1.0, 2.0, 0.0, models.SignalNone},
		{"nan never fires", math.NaN(), math.NaN(), 0.0, models.SignalNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, e.classify(c.spotRet, c.rv1mChg, c.vixChg))
		})
	}
}
