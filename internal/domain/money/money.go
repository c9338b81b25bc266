package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits a currency amount may carry.
const Precision = 2

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrTooPrecise     = errors.New("amount has more than 2 fractional digits")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// Money is a non-rounding currency amount.
type Money struct {
	amount decimal.Decimal
}

func New(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if !d.Equal(d.Round(Precision)) {
		return Money{}, ErrTooPrecise
	}
	return Money{amount: d}, nil
}

func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return New(d)
}

func FromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

func Zero() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub may produce a negative amount; callers decide whether that is allowed.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) String() string {
	return m.amount.StringFixed(Precision)
}
