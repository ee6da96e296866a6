package money

import (
	"math"
	"strconv"
)

// Money is an amount of currency stored as a whole number of minor units
// (cents). It marshals to and from JSON as a decimal number of major units,
// which is the shape both services put on the wire.
type Money struct {
	cents int64
}

// FromCents wraps an amount already expressed in minor units.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// FromMajorUnits converts a decimal amount of major units to Money,
// rounding half away from zero to the nearest cent.
func FromMajorUnits(amount float64) Money {
	return Money{cents: int64(math.Round(amount * 100))}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) MajorUnits() float64 {
	return float64(m.cents) / 100
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) String() string {
	return strconv.FormatFloat(m.MajorUnits(), 'f', 2, 64)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, m.MajorUnits(), 'f', -1, 64), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	amount, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*m = FromMajorUnits(amount)
	return nil
}
