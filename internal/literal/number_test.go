package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumberCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"42", "42"},
		{"+7", "7"},
		{"-1", "-1"},
		{"1.2", "1.2"},
		{"3e+21", "3e+21"},
		{"4e-22", "4e-22"},
		{"5.6e+23", "5.6e+23"},
		{"7.8e-24", "7.8e-24"},
		{"1.", "1.0"},
		{".2", "0.2"},
		{"3.e4", "30000.0"},
		{"5.e+6", "5000000.0"},
		{"7.e-8", "7e-08"},
		{".9e10", "9000000000.0"},
		{".11e+12", "110000000000.0"},
		{".13e-14", "1.3e-15"},
		{"1e16", "1e+16"},
		{"0.0001", "0.0001"},
		{"0.00001", "1e-05"},
		{"-0.0", "-0.0"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := ParseNumber(tt.input)
			require.NoError(t, err)
			got, err := FormatNumber(n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumberRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "+", "-", ".", "1e", "1e+", "1..2", "abc", "1x", "--1", "e5"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseNumber(input)
			assert.Error(t, err)
		})
	}
}

func TestParseNumberKinds(t *testing.T) {
	n, err := ParseNumber("12")
	require.NoError(t, err)
	assert.False(t, n.IsFloat)
	assert.Equal(t, int64(12), n.Int.Int64())

	n, err = ParseNumber("-2.5")
	require.NoError(t, err)
	assert.True(t, n.IsFloat)
	assert.Equal(t, -2.5, n.Float)
}

func TestFormatFloatRejectsNonFinite(t *testing.T) {
	_, err := ParseNumber("1e999")
	assert.Error(t, err)
}
