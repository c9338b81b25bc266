//go:build unit

package money_test

import (
	"testing"

	"field-rental/internal/domain/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		errIs error
	}{
		{name: "integer amount", in: "200000", want: "200000.00"},
		{name: "two fractional digits", in: "12.50", want: "12.50"},
		{name: "zero", in: "0", want: "0.00"},
		{name: "negative", in: "-1", errIs: money.ErrNegativeAmount},
		{name: "three fractional digits", in: "1.005", errIs: money.ErrTooPrecise},
		{name: "trailing zeros beyond precision are fine", in: "1.500", want: "1.50"},
		{name: "garbage", in: "abc", errIs: money.ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := money.Parse(tc.in)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	rate := money.FromInt(200000)

	assert.Equal(t, "400000.00", rate.MulInt(2).String())
	assert.True(t, rate.Sub(money.FromInt(300000)).IsNegative())
	assert.True(t, money.FromInt(100000).LessThan(rate))
	assert.True(t, rate.Add(rate).Equal(rate.MulInt(2)))
	assert.Equal(t, 0, money.Zero().Cmp(money.FromInt(0)))

	m, err := money.New(decimal.RequireFromString("0.10"))
	require.NoError(t, err)
	assert.Equal(t, "0.30", m.MulInt(3).String())
}
