package utils

import (
	"time"

	"github.com/holdings-one/holdings"
)

// Logging is a decorator that logs every processed transaction with its
// routing path, duration and outcome.
type Logging struct{}

var _ holdings.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error or result, with duration.
func (l Logging) Check(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx, next holdings.Checker) (*holdings.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	l.log(ctx, "check", holdings.GetPath(tx), start, err)
	return res, err
}

// Deliver logs error or result, with duration.
func (l Logging) Deliver(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx, next holdings.Deliverer) (*holdings.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	l.log(ctx, "deliver", holdings.GetPath(tx), start, err)
	return res, err
}

func (l Logging) log(ctx holdings.Context, phase, path string, start time.Time, err error) {
	logger := holdings.GetLogger(ctx)
	if err != nil {
		logger.Error().
			Str("phase", phase).
			Str("path", path).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("transaction failed")
		return
	}
	logger.Info().
		Str("phase", phase).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("transaction processed")
}
