package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]heirloom.Handler
}

var _ heirloom.Registry = (*Router)(nil)
var _ heirloom.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]heirloom.Handler, 10),
	}
}

// Handle adds a new Handler for the path of given message.
// panics if another Handler was already registered
func (r *Router) Handle(msg heirloom.Msg, h heirloom.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path.
// If no path is found, returns a noSuchPath Handler
// Always returns a non-nil Handler
func (r *Router) handler(m heirloom.Msg) heirloom.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(heirloom.Context, heirloom.KVStore, heirloom.Tx) (*heirloom.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path: %s", string(path))
}

func (path notFoundHandler) Deliver(heirloom.Context, heirloom.KVStore, heirloom.Tx) (*heirloom.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "path: %s", string(path))
}
