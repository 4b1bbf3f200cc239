package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name     string
		display  string
		expected float64
	}{
		{name: "currency symbol with thousands separator", display: "฿1,990", expected: 1990},
		{name: "dollar symbol", display: "$1,599", expected: 1599},
		{name: "no separators", display: "500", expected: 500},
		{name: "fractional amount", display: "฿349.93", expected: 349.93},
		{name: "large grouped amount", display: "฿122,900", expected: 122900},
		{name: "empty string", display: "", expected: 0},
		{name: "no digits at all", display: "free", expected: 0},
		{name: "whitespace and text around digits", display: " THB 2,500 baht ", expected: 2500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Parse(tc.display))
		})
	}
}

func Test_Format(t *testing.T) {
	testCases := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "small integer", amount: 500, expected: "฿500"},
		{name: "thousands grouping", amount: 1990, expected: "฿1,990"},
		{name: "six digits", amount: 122900, expected: "฿122,900"},
		{name: "zero", amount: 0, expected: "฿0"},
		{name: "two decimal places", amount: 349.93, expected: "฿349.93"},
		{name: "single decimal place", amount: 349.9, expected: "฿349.9"},
		{name: "negative amount", amount: -150, expected: "-฿150"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.amount))
		})
	}
}

func Test_Format_RoundTrip(t *testing.T) {
	// Parse must invert Format for the canonical formatting rule.
	for _, n := range []float64{0, 1, 999, 1000, 4999, 5000, 55900, 1234567} {
		assert.Equal(t, n, Parse(Format(n)), "round trip failed for %v", n)
	}
}

func Test_Money_JSON(t *testing.T) {
	data, err := json.Marshal(New(1990))
	require.NoError(t, err)
	assert.Equal(t, `"฿1,990"`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"฿55,900"`), &m))
	assert.Equal(t, 55900.0, m.Float())

	// Bare numbers and malformed input degrade rather than fail.
	require.NoError(t, json.Unmarshal([]byte(`1500`), &m))
	assert.Equal(t, 1500.0, m.Float())
	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &m))
	assert.Equal(t, 0.0, m.Float())
}
