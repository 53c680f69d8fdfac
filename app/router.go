package app

import (
	"fmt"
	"regexp"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
)

// isPath is the RegExp to ensure the routes make sense.
var isPath = regexp.MustCompile(`^[a-z0-9_/]{4,40}$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	routes map[string]holdings.Handler
}

var _ holdings.Registry = (*Router)(nil)
var _ holdings.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]holdings.Handler),
	}
}

// Handle adds a new Handler for the given path. Panics on duplicate or
// invalid path to enforce a correct routing table on application start.
func (r *Router) Handle(path string, h holdings.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) handler(path string) holdings.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path}
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx) (*holdings.CheckResult, error) {
	return r.handler(holdings.GetPath(tx)).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx holdings.Context, store holdings.KVStore, tx holdings.Tx) (*holdings.DeliverResult, error) {
	return r.handler(holdings.GetPath(tx)).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ holdings.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(holdings.Context, holdings.KVStore, holdings.Tx) (*holdings.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path %q", h.path)
}

func (h noSuchPathHandler) Deliver(holdings.Context, holdings.KVStore, holdings.Tx) (*holdings.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path %q", h.path)
}
