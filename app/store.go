package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the ABCI calls that do not run transactions: the
// handshake, genesis, queries, block bookkeeping and commits. BaseApp adds
// transactions on top of it.
//
// The calls that carry no user input panic on failure, there is no way to
// report an error to tendermint from them and the node must not go on.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *CommitStore
	initializer heirloom.Initializer
	queryRouter heirloom.QueryRouter

	// chainID is empty until the genesis is loaded.
	chainID string

	// baseContext lives as long as the app. blockContext is rebuilt from
	// it by BeginBlock with the height and time of the block.
	baseContext  heirloom.Context
	blockContext heirloom.Context
}

// NewStoreApp loads the latest state of store. It panics when the state
// cannot be read.
func NewStoreApp(name string, store heirloom.CommitKVStore, queryRouter heirloom.QueryRouter, baseContext heirloom.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	if id := mustLoadChainID(s.DeliverStore()); id != "" {
		s.setChainID(id)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = heirloom.WithHeight(s.baseContext, info.Version)
	switch t, ok, err := loadBlockTime(s.DeliverStore()); {
	case err != nil:
		panic(err)
	case ok:
		s.blockContext = heirloom.WithBlockTime(s.blockContext, t)
	}
	return s
}

// WithInit sets the initializer called with the genesis app state.
func (s *StoreApp) WithInit(init heirloom.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every context it builds.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = heirloom.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext carries the chain id, height and time of the current block.
func (s *StoreApp) BlockContext() heirloom.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() heirloom.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() heirloom.CacheableKVStore {
	return s.store.CheckStore()
}

func (s *StoreApp) setChainID(id string) {
	s.chainID = id
	s.baseContext = heirloom.WithChainID(s.baseContext, id)
}

// loadGenesis stores the chain id and hands the app state to the
// initializer. It runs once in the life of a chain.
func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, run init before starting the chain")
	}
	var appState heirloom.Options
	if err := json.Unmarshal(raw, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(appState, s.DeliverStore())
}

// Info reports the last committed height and hash, so tendermint knows
// which blocks to replay.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          heirloom.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := heirloom.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = heirloom.WithBlockTime(ctx, req.Header.GetTime())
	if err := saveBlockTime(s.DeliverStore(), req.Header.GetTime()); err != nil {
		panic(err)
	}
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query answers from the last committed state. The path selects the
// handler and may end with "?<mod>" to pass a modifier. The handler runs
// in the current block context, so projections depending on time use the
// block time. After a restart that is the time of the last committed block
// until the next BeginBlock. Before the first block there is no time and
// such projections fail.
//
// Key and Value of the response are ResultSets of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := s.queryRouter.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", req.Path))
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}

	// Handlers only read, anything they write is dropped.
	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := h.Query(s.blockContext, db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
