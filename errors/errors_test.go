package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate code registration")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestIsMatchesWrappedKind(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"direct root":         {ErrNotFound, ErrNotFound, true},
		"single wrap":         {ErrNotFound, Wrap(ErrNotFound, "no such record"), true},
		"double wrap":         {ErrNotFound, Wrap(Wrap(ErrNotFound, "inner"), "outer"), true},
		"newf":                {ErrInvalidAmount, ErrInvalidAmount.Newf("got %d", -1), true},
		"different kind":      {ErrNotFound, ErrUnauthorized.New("nope"), false},
		"stdlib error":        {ErrNotFound, fmt.Errorf("plain"), false},
		"nil kind nil error":  {nil, nil, true},
		"kind and nil error":  {ErrNotFound, nil, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Is(tc.err))
		})
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapPreservesMessageChain(t *testing.T) {
	err := Wrap(ErrState, "escrow resolved")
	err = Wrap(err, "cannot settle")
	assert.Equal(t, "cannot settle: escrow resolved: invalid state", err.Error())
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("expected ErrPanic, got %+v", err)
	}
}
