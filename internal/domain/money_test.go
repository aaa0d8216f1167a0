package domain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainraise/crowdfund-server/internal/domain"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wei   string
	}{
		{"whole ether", "1", "1000000000000000000"},
		{"fractional", "1.5", "1500000000000000000"},
		{"leading dot", ".5", "500000000000000000"},
		{"single wei", "0.000000000000000001", "1"},
		{"zero", "0", "0"},
		{"full precision", "1.000000000000000001", "1000000000000000001"},
		{"large", "123456789.123456789123456789", "123456789123456789123456789"},
		{"surrounding whitespace", " 2 ", "2000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wei, err := domain.ParseEther(tt.input)
			require.NoError(t, err)

			expected, ok := new(big.Int).SetString(tt.wei, 10)
			require.True(t, ok)
			assert.Zero(t, wei.Cmp(expected), "got %s, want %s", wei, expected)
		})
	}
}

func TestParseEther_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"negative", "-1"},
		{"not a number", "abc"},
		{"two dots", "1.2.3"},
		{"too many decimal places", "1.0000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseEther(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		name string
		wei  string
		want string
	}{
		{"whole ether", "1000000000000000000", "1"},
		{"fractional", "1500000000000000000", "1.5"},
		{"single wei", "1", "0.000000000000000001"},
		{"zero", "0", "0"},
		{"sub-ether", "500000000000000000", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wei, ok := new(big.Int).SetString(tt.wei, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, domain.FormatEther(wei))
		})
	}
}

func TestFormatEther_Nil(t *testing.T) {
	assert.Equal(t, "0", domain.FormatEther(nil))
}

// Conversions must be exact in both directions, never floating point.
func TestEtherRoundTrip(t *testing.T) {
	inputs := []string{
		"1",
		"1.5",
		"0.000000000000000001",
		"123456789.123456789123456789",
		"0.1",
	}

	for _, input := range inputs {
		wei, err := domain.ParseEther(input)
		require.NoError(t, err)

		formatted := domain.FormatEther(wei)
		assert.Equal(t, input, formatted)

		back, err := domain.ParseEther(formatted)
		require.NoError(t, err)
		assert.Zero(t, wei.Cmp(back))
	}
}
