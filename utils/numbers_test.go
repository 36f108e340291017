package utils

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCount(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  int
	}{
		{name: "whole number passes through", value: 5, want: 5},
		{name: "fraction truncates not rounds", value: 5.7, want: 5},
		{name: "negative clamps to zero", value: -5, want: 0},
		{name: "negative fraction clamps to zero", value: -0.9, want: 0},
		{name: "NaN coerces to zero", value: math.NaN(), want: 0},
		{name: "positive infinity coerces to zero", value: math.Inf(1), want: 0},
		{name: "negative infinity coerces to zero", value: math.Inf(-1), want: 0},
		{name: "zero stays zero", value: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCount(tt.value))
		})
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{name: "float passes through", value: 3.5, want: 3.5},
		{name: "numeric string parses", value: "12", want: 12},
		{name: "garbage string coerces to zero", value: "twelve", want: 0},
		{name: "nil coerces to zero", value: nil, want: 0},
		{name: "bool coerces to zero", value: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceNumber(tt.value))
		})
	}
}

func TestTimestampedFilename(t *testing.T) {
	ts := time.Date(2026, 9, 1, 14, 30, 5, 0, time.Local)
	got := TimestampedFilename("silayan-laundry-", ".png", ts)
	assert.Equal(t, "silayan-laundry-20260901143005.png", got)

	pattern := regexp.MustCompile(`^silayan-laundry-\d{14}\.png$`)
	assert.Regexp(t, pattern, got)

	// The 14-digit group must parse back as a valid timestamp
	_, err := time.ParseInLocation("20060102150405", got[16:30], time.Local)
	assert.NoError(t, err)
}
