package converter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		want  string
	}{
		{name: "large price uses grouping", price: decimal.NewFromInt(100000), want: "100,000"},
		{name: "four digit price uses grouping", price: decimal.NewFromInt(5420), want: "5,420"},
		{name: "boundary thousand uses grouping", price: decimal.NewFromInt(1000), want: "1,000"},
		{name: "mid price two decimals", price: decimal.NewFromInt(50), want: "50.00"},
		{name: "sub dollar two decimals", price: decimal.NewFromFloat(0.85), want: "0.85"},
		{name: "near stable two decimals", price: decimal.NewFromFloat(1.0001), want: "1.00"},
		{name: "tiny price four decimals", price: decimal.NewFromFloat(0.005), want: "0.0050"},
		{name: "boundary cent two decimals", price: decimal.NewFromFloat(0.01), want: "0.01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatPrice(tc.price))
		})
	}
}
