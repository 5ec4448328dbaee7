package app

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/app"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/history"
	"github.com/iov-one/heirloom/x/bank"
	"github.com/iov-one/heirloom/x/sigs"
	"github.com/iov-one/heirloom/x/will"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"go.uber.org/goleak"
	"golang.org/x/crypto/ed25519"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const chainID = "heirloom-test"

// account signs transactions and tracks its sequence.
type account struct {
	key  ed25519.PrivateKey
	addr heirloom.Address
	seq  int64
}

func newAccount(t testing.TB) *account {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &account{key: priv, addr: sigs.Condition(pub).Address()}
}

type testNode struct {
	t      testing.TB
	app    app.BaseApp
	hist   *history.Store
	height int64
	now    time.Time
}

func newTestNode(t testing.TB, owner *account) *testNode {
	t.Helper()
	hist, err := history.Open("")
	require.NoError(t, err)

	base := GenerateApp(Options{
		Metrics: prometheus.NewRegistry(),
		History: hist,
	})

	state, err := GenInitOptions(owner.addr, 10000000)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})

	n := &testNode{
		t:    t,
		app:  base,
		hist: hist,
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	n.block(0)
	return n
}

// block commits the current block and starts a new one d later.
func (n *testNode) block(d time.Duration) {
	if n.height > 0 {
		n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
		n.app.Commit()
	}
	n.height++
	n.now = n.now.Add(d)
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: n.height, Time: n.now},
	})
}

func (n *testNode) encode(signer *account, msg heirloom.Msg) []byte {
	n.t.Helper()
	tx := NewTx(msg)
	if signer != nil {
		sig, err := sigs.SignTx(signer.key, tx, chainID, signer.seq)
		require.NoError(n.t, err)
		tx.Signatures = append(tx.Signatures, sig)
		signer.seq++
	}
	bz, err := tx.Marshal()
	require.NoError(n.t, err)
	return bz
}

func (n *testNode) deliver(signer *account, msg heirloom.Msg) abci.ResponseDeliverTx {
	n.t.Helper()
	return n.app.DeliverTx(n.encode(signer, msg))
}

func (n *testNode) mustDeliver(signer *account, msg heirloom.Msg) uint64 {
	n.t.Helper()
	res, err := heirloom.ParseDeliverOrError(n.deliver(signer, msg))
	require.NoError(n.t, err)
	if len(res.Data) == 0 {
		return 0
	}
	v, err := will.ParseAmount(res.Data)
	require.NoError(n.t, err)
	return v
}

func (n *testNode) native(addr heirloom.Address) uint64 {
	n.t.Helper()
	coins, err := bank.NewController().Balance(n.app.DeliverStore(), addr)
	require.NoError(n.t, err)
	return coins.Amount(coin.NativeAssetID)
}

func (n *testNode) query(path string, dest interface{}) {
	n.t.Helper()
	res := n.app.Query(abci.RequestQuery{Path: path})
	require.Equal(n.t, uint32(0), res.Code, res.Log)
	models, err := app.ParseQuery(res.Key, res.Value)
	require.NoError(n.t, err)
	require.Len(n.t, models, 1)
	require.NoError(n.t, TxCodec.UnmarshalJSON(models[0].Value, dest))
}

func (n *testNode) status() will.Status {
	var s will.Status
	n.query("/will/status", &s)
	return s
}

func TestWillLifecycle(t *testing.T) {
	owner := newAccount(t)
	b1, b2, b3 := newAccount(t), newAccount(t), newAccount(t)
	node := newTestNode(t, owner)
	defer node.hist.Close()

	assert.Equal(t, will.StatusNoWill, node.status())

	node.mustDeliver(owner, &will.CreateMsg{
		InactivityPeriod: 3600,
		Beneficiaries: [will.NumSlots]will.Allocation{
			{Address: b1.addr, Percent: 50},
			{Address: b2.addr, Percent: 30},
			{Address: b3.addr, Percent: 20},
		},
	})
	total := node.mustDeliver(owner, &will.DepositMsg{
		Destination: will.CustodyAddress,
		Amount:      coin.Native(5000000),
	})
	assert.Equal(t, uint64(5000000), total)
	assert.Equal(t, uint64(5000000), node.native(owner.addr))

	node.block(10 * time.Second)
	assert.Equal(t, will.StatusAlive, node.status())
	var record will.Will
	node.query("/will", &record)
	assert.Equal(t, heirloom.AsUnixTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), record.LastCheckin)
	assert.Equal(t, uint64(5000000), record.TotalLocked)
	assert.True(t, owner.addr.Equals(record.Owner))
	var remaining uint64
	node.query("/will/time_remaining", &remaining)
	assert.Equal(t, uint64(3590), remaining)

	// anyone can try to activate, but it is too early
	res := node.deliver(nil, &will.ActivateMsg{})
	assert.Equal(t, errors.ErrState.ABCICode(), res.Code)

	node.block(2 * time.Hour)
	assert.Equal(t, will.StatusReadyToActivate, node.status())
	node.mustDeliver(nil, &will.ActivateMsg{})

	node.block(time.Second)
	assert.Equal(t, will.StatusInheritanceActive, node.status())

	assert.Equal(t, uint64(2500000), node.mustDeliver(b1, &will.ClaimMsg{Slot: 1}))
	assert.Equal(t, uint64(1500000), node.mustDeliver(b2, &will.ClaimMsg{Slot: 2}))

	// wrong caller, then a repeated claim
	res = node.deliver(b2, &will.ClaimMsg{Slot: 3})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	res = node.deliver(b1, &will.ClaimMsg{Slot: 1})
	assert.Equal(t, will.ErrAlreadyClaimed.ABCICode(), res.Code)

	assert.Equal(t, uint64(1000000), node.mustDeliver(b3, &will.ClaimMsg{Slot: 3}))
	node.block(time.Second)

	assert.Equal(t, uint64(2500000), node.native(b1.addr))
	assert.Equal(t, uint64(1500000), node.native(b2.addr))
	assert.Equal(t, uint64(1000000), node.native(b3.addr))
	assert.Equal(t, uint64(0), node.native(will.CustodyAddress))

	var balance uint64
	node.query("/will/balance", &balance)
	assert.Equal(t, uint64(5000000), balance)

	events, err := node.hist.List("")
	require.NoError(t, err)
	paths := make([]string, 0, len(events))
	for _, e := range events {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{
		"will/create", "will/deposit", "will/activate",
		"will/claim", "will/claim", "will/claim",
	}, paths)
	assert.Equal(t, owner.addr.String(), events[0].Signer)
	assert.Equal(t, "", events[2].Signer)

	claims, err := node.hist.List("will/claim")
	require.NoError(t, err)
	assert.Len(t, claims, 3)
}

func TestFailedDeliverKeepsBalances(t *testing.T) {
	owner := newAccount(t)
	b1 := newAccount(t)
	node := newTestNode(t, owner)
	defer node.hist.Close()

	node.mustDeliver(owner, &will.CreateMsg{
		InactivityPeriod: 600,
		Beneficiaries: [will.NumSlots]will.Allocation{
			{Address: b1.addr, Percent: 100},
		},
	})

	// below the configured minimum deposit
	res := node.deliver(owner, &will.DepositMsg{
		Destination: will.CustodyAddress,
		Amount:      coin.Native(10),
	})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	// more than the owner holds: the bank fails after the will accepted it
	res = node.deliver(owner, &will.DepositMsg{
		Destination: will.CustodyAddress,
		Amount:      coin.Native(20000000),
	})
	assert.Equal(t, errors.ErrInsufficientAmount.ABCICode(), res.Code)

	node.block(time.Second)
	assert.Equal(t, uint64(10000000), node.native(owner.addr))
	var balance uint64
	node.query("/will/balance", &balance)
	assert.Equal(t, uint64(0), balance)

	// the failed transactions still consumed a sequence each
	refund := node.mustDeliver(owner, &will.RevokeMsg{})
	assert.Equal(t, uint64(0), refund)
	node.block(time.Second)
	assert.Equal(t, will.StatusNoWill, node.status())
}

func TestSignatureRequiredForOwnerActions(t *testing.T) {
	owner := newAccount(t)
	node := newTestNode(t, owner)
	defer node.hist.Close()

	create := &will.CreateMsg{
		InactivityPeriod: 600,
		Beneficiaries: [will.NumSlots]will.Allocation{
			{Address: owner.addr, Percent: 100},
		},
	}
	res := node.deliver(nil, create)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	node.mustDeliver(owner, create)

	// replaying an already used sequence is rejected
	node.mustDeliver(owner, &will.CheckInMsg{})
	owner.seq--
	res = node.deliver(owner, &will.CheckInMsg{})
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res.Code)

	chk := node.app.CheckTx([]byte("not a transaction"))
	assert.NotEqual(t, uint32(0), chk.Code)
}
