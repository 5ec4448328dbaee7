/*
Package app links together all the various components
to construct the heirloomd application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/app"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/history"
	"github.com/iov-one/heirloom/store/iavl"
	"github.com/iov-one/heirloom/x"
	"github.com/iov-one/heirloom/x/bank"
	"github.com/iov-one/heirloom/x/sigs"
	"github.com/iov-one/heirloom/x/utils"
	"github.com/iov-one/heirloom/x/will"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the ABCI Info call.
const Name = "heirloomd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Both metrics and hist are optional.
func Chain(metrics *utils.Metrics, hist *history.Store, authFn x.Authenticator) app.Decorators {
	var recorder heirloom.Decorator
	if hist != nil {
		recorder = history.NewDecorator(hist, authFn)
	}
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		metrics,
		// activation is open to anyone, so unsigned transactions pass
		sigs.NewDecorator().AllowMissingSigs(),
		// on DeliverTx, a failed message leaves no trace but the
		// signer sequence
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
		recorder,
	)
}

// Router returns a default router, dispatching to the bank and will
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := bank.NewController()
	bank.RegisterRoutes(r, authFn, control)
	will.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth" and the "/will" projections
func QueryRouter() heirloom.QueryRouter {
	r := heirloom.NewQueryRouter()
	r.RegisterAll(
		bank.RegisterQuery,
		sigs.RegisterQuery,
		will.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics *utils.Metrics, hist *history.Store) heirloom.Handler {
	authFn := Authenticator()
	return Chain(metrics, hist, authFn).WithHandler(Router(authFn))
}

// Genesis returns the initializers run on InitChain.
func Genesis() heirloom.Initializer {
	return heirloom.ChainInitializers(
		bank.Initializer{},
		will.Initializer{},
	)
}

// Options configures GenerateApp.
type Options struct {
	// Store holds the chain state. Nil keeps everything in memory.
	Store  heirloom.CommitKVStore
	Debug  bool
	Logger log.Logger
	// Metrics receives the transaction collectors, nil disables them.
	Metrics prometheus.Registerer
	// History receives delivered transactions, nil disables recording.
	History *history.Store
}

// GenerateApp builds the ABCI application described by opts.
func GenerateApp(opts Options) app.BaseApp {
	kv := opts.Store
	if kv == nil {
		kv = iavl.NewMemCommitStore()
	}

	var metrics *utils.Metrics
	if opts.Metrics != nil {
		metrics = utils.NewMetrics(opts.Metrics)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Genesis()).
		WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(metrics, opts.History), opts.Debug)
}

// CommitKVStore opens the state database under home. The caller must Close
// it once the application stopped.
func CommitKVStore(home string) (iavl.CommitStore, error) {
	// Expand the path fully
	path, err := filepath.Abs(filepath.Join(home, "heirloom.db"))
	if err != nil {
		return iavl.CommitStore{}, errors.Wrapf(errors.ErrInput, "invalid home: %s", home)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
