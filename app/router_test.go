package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/holdingstest"
)

type countingHandler struct {
	called int
}

var _ holdings.Handler = (*countingHandler)(nil)

func (h *countingHandler) Check(holdings.Context, holdings.KVStore, holdings.Tx) (*holdings.CheckResult, error) {
	h.called++
	return &holdings.CheckResult{}, nil
}

func (h *countingHandler) Deliver(holdings.Context, holdings.KVStore, holdings.Tx) (*holdings.DeliverResult, error) {
	h.called++
	return &holdings.DeliverResult{}, nil
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	var good, other countingHandler
	r.Handle("good/path", &good)
	r.Handle("other/path", &other)

	tx := &holdingstest.Tx{Msg: &holdingstest.Msg{RoutePath: "good/path"}}
	_, err := r.Deliver(context.Background(), nil, tx)
	assert.NoError(t, err)
	_, err = r.Check(context.Background(), nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 2, good.called)
	assert.Equal(t, 0, other.called)
}

func TestRouterUnknownPath(t *testing.T) {
	r := NewRouter()
	tx := &holdingstest.Tx{Msg: &holdingstest.Msg{RoutePath: "no/such_path"}}
	_, err := r.Deliver(context.Background(), nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(context.Background(), nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRouterRejectsBadRegistration(t *testing.T) {
	r := NewRouter()
	var h countingHandler
	r.Handle("good/path", &h)

	assert.Panics(t, func() { r.Handle("good/path", &h) })
	assert.Panics(t, func() { r.Handle("NOT VALID", &h) })
}
