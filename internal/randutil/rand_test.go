package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForKeyIsReproducible(t *testing.T) {
	a := ForKey("poker_now_log_pglAQcKhjsRMPXbt7kq-3")
	b := ForKey("poker_now_log_pglAQcKhjsRMPXbt7kq-3")
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestForKeyDiffersByKey(t *testing.T) {
	assert.NotEqual(t, ForKey("log-1").Uint64(), ForKey("log-2").Uint64())
}

func TestNewMatchesSeed(t *testing.T) {
	assert.Equal(t, New(42).Uint64(), New(42).Uint64())
	assert.NotEqual(t, New(42).Uint64(), New(43).Uint64())
}
