package repository

// Timeframe represents bar resolution buckets.
type Timeframe string

const (
	TF1d Timeframe = "1d"
	TF1h Timeframe = "1h"
)

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF1d, TF1h:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF1d }

// NormalizeTimeframe converts raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return DefaultTimeframe()
}
