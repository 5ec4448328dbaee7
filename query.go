package heirloom

import "fmt"

// KeyQueryMod is the only query modifier supported, the data is an exact
// key. An empty data may select a singleton record.
const KeyQueryMod = ""

// Model is one key-value pair of a query response.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for one path.
//
// The context carries the height and time of the last block, so time based
// projections are computed against the chain clock and never the wall clock.
type QueryHandler interface {
	Query(ctx Context, db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of one extension to a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to their handler.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register with this router.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics when path already has a handler, a conflict between two
// extensions is a programming mistake.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler of path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
