package timing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skiresults/internal/timing"
)

func strPtr(s string) *string { return &s }

func TestToSeconds_AcceptedFormats(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0:00:24.07", 24.07},
		{"1:02:03.5", 3723.5},
		{"00:30.90", 30.90},
		{"01:03.32", 63.32},
		{"1:39.58", 99.58},
		{"00:47.17", 47.17},
		{"02:13.23", 133.23},
		{"32.40", 32.40},
		{"123.456", 123.456},
		{" 1:39.58 ", 99.58},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := timing.ToSeconds(strPtr(tt.input))
			if assert.NotNil(t, got) {
				assert.InDelta(t, tt.want, *got, 1e-9)
			}
		})
	}
}

func TestToSeconds_NullInputs(t *testing.T) {
	inputs := []*string{
		nil,
		strPtr(""),
		strPtr("   "),
		strPtr("DNF"),
		strPtr("DNS"),
		strPtr("DQ"),
		strPtr("-"),
	}
	for _, in := range inputs {
		assert.Nil(t, timing.ToSeconds(in))
	}
}

func TestToSeconds_MalformedReturnsNil(t *testing.T) {
	inputs := []string{
		"1:2.3",      // minutes pattern needs two-digit seconds
		"1:234.5",    // seconds field too long
		"1:39",       // no fraction
		"39",         // integer without fraction
		"abc",        // not a time at all
		"1:39.58 GS", // trailing text, patterns are anchored
		"0:00:24",    // H:MM:SS without fraction
		"-1:39.58",   // negative
		"1.39.58",    // wrong separators
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Nil(t, timing.ToSeconds(strPtr(in)))
		})
	}
}

func TestToSeconds_PreservesPrecision(t *testing.T) {
	got := timing.ToSeconds(strPtr("0:00:48.091"))
	if assert.NotNil(t, got) {
		assert.InDelta(t, 48.091, *got, 1e-9)
	}
}
