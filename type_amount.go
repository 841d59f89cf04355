package finbook

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Amount represents a monetary value with cent precision.
//
// Every arithmetic operation rounds its result to 2 decimal places, half away
// from zero. The rounding happens per step, not only on display, so a long
// replay of transactions cannot accumulate sub-cent drift.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from a numeric value, rounded to cent precision.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value).Round(2)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	return decimal.Zero
}

// ParseAmount parses a decimal string into an Amount. The value must be a
// finite decimal number; it is normalized to 2 decimal places.
func ParseAmount(str string) (Amount, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	return Amount{value: d.Round(2)}, nil
}

func (a Amount) IsZero() bool            { return a.value.IsZero() }
func (a Amount) IsPositive() bool        { return a.value.IsPositive() }
func (a Amount) IsNegative() bool        { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool     { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool  { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }
func (a Amount) Cmp(b Amount) int        { return a.value.Cmp(b.value) }

// Add returns a+b rounded to cent precision.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value).Round(2)} }

// Sub returns a-b rounded to cent precision.
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value).Round(2)} }

// Neg returns -a.
func (a Amount) Neg() Amount { return Amount{value: a.value.Neg()} }

// Abs returns the absolute value of a.
func (a Amount) Abs() Amount { return Amount{value: a.value.Abs()} }

// String returns the plain fixed-point representation, e.g. "12.50".
func (a Amount) String() string { return a.value.StringFixed(2) }

// Display formats the amount for a currency using its conventional symbol and
// separators, e.g. Display("EUR") -> "€12.50".
func (a Amount) Display(currency string) string {
	cur := money.New(0, currency).Currency()
	minor := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.Round(2).MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	a.value = d.Round(2)
	return nil
}
