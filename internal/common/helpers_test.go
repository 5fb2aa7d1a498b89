package common

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPoints(t *testing.T) {
	cases := map[int64]string{
		0:    "0 points",
		1:    "1 point",
		200:  "200 points",
		1560: "1,560 points",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPoints(in), "FormatPoints(%d)", in)
	}
}

func TestFormatPointsDelta(t *testing.T) {
	assert.Equal(t, "+100 points", FormatPointsDelta(100))
	assert.Equal(t, "-500 points", FormatPointsDelta(-500))
	assert.Equal(t, "+1 point", FormatPointsDelta(1))
	assert.Equal(t, "-1,500 points", FormatPointsDelta(-1500))
	assert.Equal(t, "-9,223,372,036,854,775,808 points", FormatPointsDelta(math.MinInt64))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-2,350", FormatNumber(-2350))
	assert.Equal(t, "9,223,372,036,854,775,807", FormatNumber(math.MaxInt64))
	assert.Equal(t, "-9,223,372,036,854,775,808", FormatNumber(math.MinInt64))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "1 hour", FormatHours(1))
	assert.Equal(t, "56 hours", FormatHours(56))
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("Nowhere/Atlantis"))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "October 17, 2026", FormatDate(d, time.UTC))
}
