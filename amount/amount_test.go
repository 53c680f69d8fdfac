package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holdings-one/holdings/errors"
)

func TestAddNormalizes(t *testing.T) {
	cases := map[string]struct {
		a, b    Amount
		want    Amount
		wantErr *errors.Error
	}{
		"simple":              {New(1, 0), New(2, 0), New(3, 0), nil},
		"fraction carry":      {New(0, 600000000), New(0, 700000000), New(1, 300000000), nil},
		"negative fraction":   {New(2, 0), New(0, -500000000), New(1, 500000000), nil},
		"cancel out":          {New(4, 0), New(-4, 0), New(0, 0), nil},
		"overflow":            {New(MaxInt, 0), New(1, 0), Amount{}, errors.ErrOverflow},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubtract(t *testing.T) {
	got, err := New(100, 0).Subtract(New(95, 0))
	assert.NoError(t, err)
	assert.Equal(t, New(5, 0), got)

	got, err = New(1, 0).Subtract(New(2, 0))
	assert.NoError(t, err)
	assert.Equal(t, New(-1, 0), got)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 1, New(2, 0).Compare(New(1, 999999999)))
	assert.Equal(t, -1, New(1, 0).Compare(New(1, 1)))
	assert.Equal(t, 0, New(7, 5).Compare(New(7, 5)))
	assert.True(t, New(7, 5).IsGTE(New(7, 5)))
	assert.False(t, New(7, 4).IsGTE(New(7, 5)))
}

func TestPredicates(t *testing.T) {
	assert.True(t, One().IsPositive())
	assert.True(t, New(0, 1).IsPositive())
	assert.False(t, New(0, 0).IsPositive())
	assert.False(t, New(0, -1).IsPositive())
	assert.True(t, New(0, 0).IsZero())
	assert.True(t, New(0, 0).IsNonNegative())
	assert.False(t, New(-1, 0).IsNonNegative())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New(5, 250000000).Validate())
	assert.NoError(t, New(-5, -1).Validate())
	assert.True(t, errors.ErrOverflow.Is(New(MaxInt+1, 0).Validate()))
	assert.True(t, errors.ErrOverflow.Is(New(0, FracUnit).Validate()))
	assert.True(t, errors.ErrState.Is(New(1, -1).Validate()))
}

func TestSum(t *testing.T) {
	total, err := Sum(New(60, 0), New(40, 0))
	assert.NoError(t, err)
	assert.Equal(t, New(100, 0), total)

	total, err = Sum()
	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.5", New(1, 500000000).String())
	assert.Equal(t, "0.000000001", New(0, 1).String())
	assert.Equal(t, "42", New(42, 0).String())
}
