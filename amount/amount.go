package amount

import (
	"strconv"
	"strings"

	"github.com/holdings-one/holdings/errors"
)

const (
	// MaxInt is the largest whole value we accept.
	MaxInt int64 = 999999999999999 // 10^15-1
	// MinInt is the lowest whole value we accept.
	MinInt = -MaxInt

	// FracUnit is the smallest number we divide by.
	FracUnit int64 = 1000000000 // fractional units = 10^9
	// MaxFrac is the highest possible fractional value.
	MaxFrac = FracUnit - 1
	// MinFrac is the lowest possible fractional value.
	MinFrac = -MaxFrac
)

// Amount is a fixed-point decimal value with nine fractional digits. Unlike a
// wallet balance it carries no currency identity; the asset type a record
// belongs to provides that.
type Amount struct {
	Whole      int64 `json:"whole"`
	Fractional int64 `json:"fractional,omitempty"`
}

// New creates an Amount of the given whole and fractional value.
func New(whole, fractional int64) Amount {
	return Amount{
		Whole:      whole,
		Fractional: fractional,
	}
}

// One returns the unit amount, the only legal value of a non-fungible record.
func One() Amount {
	return Amount{Whole: 1}
}

// Add combines two amounts. Returns an error if the combination would cause
// an overflow.
func (a Amount) Add(o Amount) (Amount, error) {
	a.Whole += o.Whole
	a.Fractional += o.Fractional
	return a.normalize()
}

// Negative returns the opposite value.
//
//	a.Add(a.Negative()).IsZero() == true
func (a Amount) Negative() Amount {
	return Amount{
		Whole:      -1 * a.Whole,
		Fractional: -1 * a.Fractional,
	}
}

// Subtract returns the difference of the two amounts.
func (a Amount) Subtract(o Amount) (Amount, error) {
	return a.Add(o.Negative())
}

// Compare returns 1 if a is larger, -1 if o is larger, 0 if equal. It assumes
// both values were already normalized.
func (a Amount) Compare(o Amount) int {
	if a.Whole > o.Whole {
		return 1
	}
	if a.Whole < o.Whole {
		return -1
	}
	// same integer, compare fractional
	if a.Fractional > o.Fractional {
		return 1
	}
	if a.Fractional < o.Fractional {
		return -1
	}
	return 0
}

// Equals returns true if both fields are identical.
func (a Amount) Equals(o Amount) bool {
	return a.Whole == o.Whole && a.Fractional == o.Fractional
}

// IsZero returns true if the value is 0.
func (a Amount) IsZero() bool {
	return a.Whole == 0 && a.Fractional == 0
}

// IsPositive returns true if the value is greater than 0.
func (a Amount) IsPositive() bool {
	return a.Whole > 0 ||
		(a.Whole == 0 && a.Fractional > 0)
}

// IsNonNegative returns true if the value is 0 or higher.
func (a Amount) IsNonNegative() bool {
	return a.Whole >= 0 && a.Fractional >= 0
}

// IsGTE returns true if a is at least as large as o. It assumes both values
// were already normalized.
func (a Amount) IsGTE(o Amount) bool {
	return a.Compare(o) >= 0
}

// Validate ensures that the amount is in the valid range. It accepts negative
// values, so callers may want to make additional checks in their business
// logic.
func (a Amount) Validate() error {
	if a.Whole < MinInt || a.Whole > MaxInt {
		return errors.ErrOverflow
	}
	if a.Fractional < MinFrac || a.Fractional > MaxFrac {
		return errors.Wrap(errors.ErrOverflow, "fractional")
	}
	// make sure signs match
	if a.Whole != 0 && a.Fractional != 0 &&
		((a.Whole > 0) != (a.Fractional > 0)) {
		return errors.Wrap(errors.ErrState, "mismatched sign")
	}
	return nil
}

// Sum adds up all given amounts.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return Amount{}, err
		}
	}
	return total, nil
}

// normalize adjusts the fractional part to correspond to the range and the
// integer part. If the normalized amount is outside of the range, returns an
// error.
func (a Amount) normalize() (Amount, error) {
	// keep fraction in range
	for a.Fractional < MinFrac {
		a.Whole--
		a.Fractional += FracUnit
	}
	for a.Fractional > MaxFrac {
		a.Whole++
		a.Fractional -= FracUnit
	}

	// make sure the signs correspond
	if (a.Whole > 0) && (a.Fractional < 0) {
		a.Whole--
		a.Fractional += FracUnit
	} else if (a.Whole < 0) && (a.Fractional > 0) {
		a.Whole++
		a.Fractional -= FracUnit
	}

	if a.Whole < MinInt || a.Whole > MaxInt {
		return Amount{}, errors.ErrOverflow
	}
	return a, nil
}

// String provides a human readable representation of the amount. This is
// meant mostly for testing and debugging.
func (a Amount) String() string {
	var b strings.Builder

	if n, err := a.normalize(); err == nil {
		a = n
	}

	b.WriteString(strconv.FormatInt(a.Whole, 10))

	if f := a.Fractional; f != 0 {
		if f < 0 {
			f = -f
		}
		s := strconv.FormatInt(f, 10)
		// Add leading zeros to convert it to a floating point number.
		s = "." + strings.Repeat("0", 9-len(s)) + s
		// Remove trailing zeros as they provide no information.
		s = strings.TrimRight(s, "0")
		b.WriteString(s)
	}

	return b.String()
}
