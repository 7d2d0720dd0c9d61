package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()

	// capacity 2, effectively no refill within the test
	assert.True(t, l.Allow("report", 2, 0.0001))
	assert.True(t, l.Allow("report", 2, 0.0001))
	assert.False(t, l.Allow("report", 2, 0.0001))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()

	assert.True(t, l.Allow("report", 1, 0.0001))
	assert.False(t, l.Allow("report", 1, 0.0001))
	assert.True(t, l.Allow("regime", 1, 0.0001))
}

func TestRefillRestoresTokens(t *testing.T) {
	l := New()

	assert.True(t, l.Allow("bars", 1, 200))
	time.Sleep(10 * time.Millisecond) // 2 tokens at 200/s, capped at capacity
	assert.True(t, l.Allow("bars", 1, 200))
}
