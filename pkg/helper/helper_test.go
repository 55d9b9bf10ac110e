package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecondsToMinutes(t *testing.T) {
	assert.Equal(t, "01:23.456", SecondsToMinutes(83.456))
	assert.Equal(t, "00:59.999", SecondsToMinutes(59.999))
	assert.Equal(t, "02:00.000", SecondsToMinutes(120.0))
	assert.Equal(t, "-", SecondsToMinutes(0))
	assert.Equal(t, "-", SecondsToMinutes(-3.2))
}

func TestSecondsToMMSS(t *testing.T) {
	assert.Equal(t, "01:23", SecondsToMMSS(83.456))
	assert.Equal(t, "02:00", SecondsToMMSS(120.0))
	assert.Equal(t, "-", SecondsToMMSS(0))
}
