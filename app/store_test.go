package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// rawQuery returns the value stored under the exact key.
type rawQuery struct{}

func (rawQuery) Query(_ heirloom.Context, db heirloom.ReadOnlyKVStore, mod string, data []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrap(errors.ErrInput, "unknown mod")
	}
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []heirloom.Model{heirloom.Pair(data, v)}, nil
}

// timeQuery returns the block time as seen by queries.
type timeQuery struct{}

func (timeQuery) Query(ctx heirloom.Context, _ heirloom.ReadOnlyKVStore, _ string, _ []byte) ([]heirloom.Model, error) {
	now, err := heirloom.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	return []heirloom.Model{heirloom.Pair([]byte("now"), []byte(now.UTC().Format(time.RFC3339)))}, nil
}

func newTestApp(t testing.TB, kv heirloom.CommitKVStore, h heirloom.Handler) BaseApp {
	t.Helper()
	qr := heirloom.NewQueryRouter()
	qr.Register("/", rawQuery{})
	qr.Register("/now", timeQuery{})
	return NewBaseApp(NewStoreApp("test", kv, qr, context.Background()), testDecoder, h, false)
}

func TestStoreAppLifecycle(t *testing.T) {
	kv := iavl.NewMemCommitStore()
	h := newCountingHandler(nil)
	app := newTestApp(t, kv, h)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(0), info.LastBlockHeight)
	assert.Equal(t, "test", info.Data)
	assert.Equal(t, "", app.GetChainID())

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"any": {}}`),
	})
	assert.Equal(t, "test-chain", app.GetChainID())

	// a second genesis is rejected
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "other", AppStateBytes: []byte(`{}`)})
	})

	blockTime := time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: blockTime}})

	tx := encodeTestMsg(&testMsg{Route: "test/set", Key: []byte("color"), Value: []byte("blue")})
	check := app.CheckTx(tx)
	require.Equal(t, uint32(0), check.Code, check.Log)
	assert.Equal(t, int64(10), check.GasWanted)

	dres := app.DeliverTx(tx)
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, "ok", dres.Log)
	assert.Equal(t, 2, *h.calls)

	// not yet committed, so not visible to queries
	qres := app.Query(abci.RequestQuery{Path: "/", Data: []byte("color")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	models, err := ParseQuery(qres.Key, qres.Value)
	require.NoError(t, err)
	assert.Empty(t, models)

	app.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	qres = app.Query(abci.RequestQuery{Path: "/", Data: []byte("color")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	assert.Equal(t, int64(1), qres.Height)
	models, err = ParseQuery(qres.Key, qres.Value)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("blue"), models[0].Value)

	qres = app.Query(abci.RequestQuery{Path: "/now"})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	models, err = ParseQuery(qres.Key, qres.Value)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "2020-03-04T05:06:07Z", string(models[0].Value))

	info = app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	// reloading from the same store restores the chain id and height
	reloaded := newTestApp(t, kv, h)
	assert.Equal(t, "test-chain", reloaded.GetChainID())
	height, ok := heirloom.GetHeight(reloaded.BlockContext())
	assert.True(t, ok)
	assert.Equal(t, int64(1), height)
}

func TestQueryTimeAfterReload(t *testing.T) {
	kv := iavl.NewMemCommitStore()
	h := newCountingHandler(nil)

	// before the first block no time is known
	app := newTestApp(t, kv, h)
	qres := app.Query(abci.RequestQuery{Path: "/now"})
	assert.Equal(t, errors.ErrHuman.ABCICode(), qres.Code)

	app.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	blockTime := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: blockTime}})
	app.EndBlock(abci.RequestEndBlock{Height: 1})
	app.Commit()

	reloaded := newTestApp(t, kv, h)
	now, err := heirloom.BlockTime(reloaded.BlockContext())
	require.NoError(t, err)
	assert.Equal(t, blockTime, now)

	qres = reloaded.Query(abci.RequestQuery{Path: "/now"})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	models, err := ParseQuery(qres.Key, qres.Value)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "2021-06-07T08:09:10Z", string(models[0].Value))
}

func TestStoreAppErrors(t *testing.T) {
	h := newCountingHandler(errors.ErrUnauthorized.New("nope"))
	app := newTestApp(t, iavl.NewMemCommitStore(), h)

	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "bad chain!", AppStateBytes: []byte(`{}`)})
	})
	app.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	dres := app.DeliverTx(encodeTestMsg(&testMsg{Route: "test/set"}))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), dres.Code)

	cres := app.CheckTx([]byte{0xff, 0x01})
	assert.NotEqual(t, uint32(0), cres.Code)

	qres := app.Query(abci.RequestQuery{Path: "/missing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)
	qres = app.Query(abci.RequestQuery{Path: "/?prefix", Data: []byte("k")})
	assert.Equal(t, errors.ErrInput.ABCICode(), qres.Code)
}
