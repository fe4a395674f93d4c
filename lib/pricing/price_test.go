package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		input string
		price float64
		ok    bool
	}{
		{"3,49 €", 3.49, true},
		{"12.00", 12, true},
		{"7,5", 7.5, true},
		{"0,00", 0, true},
		{"24,90 €", 24.9, true},
		{"1 049,00 EUR", 1049, true},
		{"", 0, false},
		{"free", 0, false},
		{"€€", 0, false},
		{"n/a", 0, false},
		{"-3,49", 0, false},
	} {
		price, ok := Parse(tc.input)
		require.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			require.InDelta(t, tc.price, price, 1e-9, "input %q", tc.input)
		}
	}
}

func TestFormat(t *testing.T) {
	require.Equal(t, "3.49", Format(3.49))
	require.Equal(t, "7.50", Format(7.5))
	require.Equal(t, "12.00", Format(12))
}
