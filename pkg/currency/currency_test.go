package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"0.00":         decimal.Zero,
		"250.00":       decimal.NewFromInt(250),
		"1,234.50":     decimal.RequireFromString("1234.5"),
		"1,000,000.99": decimal.RequireFromString("1000000.989"),
	}
	for want, in := range cases {
		assert.Equal(t, want, Format(in), "monto %s", in)
	}
}

func TestFormatKES(t *testing.T) {
	assert.Equal(t, "KES 1,500.00", FormatKES(decimal.NewFromInt(1500)))
}
