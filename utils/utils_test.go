package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTimestampStrictlyIncreasing(t *testing.T) {
	prev := NextTimestamp()
	for i := 0; i < 1000; i++ {
		ts := NextTimestamp()
		assert.Greater(t, ts, prev, "timestamps must never tie, even within one instant")
		prev = ts
	}
}

func TestGenerateRandomDigitStringLengthAndCharset(t *testing.T) {
	s := GenerateRandomDigitString(22)
	assert.Len(t, s, 22)
	for _, r := range s {
		assert.True(t, r >= '0' && r <= '9')
	}
}
