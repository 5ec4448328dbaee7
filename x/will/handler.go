package will

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/x"
	"github.com/iov-one/heirloom/x/bank"
)

const (
	createCost        int64 = 300
	depositCost       int64 = 100
	checkInCost       int64 = 50
	activateCost      int64 = 50
	claimCost         int64 = 100
	revokeCost        int64 = 100
	optInAssetCost    int64 = 50
	lockAssetCost     int64 = 100
	forceActivateCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r heirloom.Registry, auth x.Authenticator, control bank.Controller) {
	r.Handle(&CreateMsg{}, CreateHandler{auth})
	r.Handle(&DepositMsg{}, DepositHandler{auth, control})
	r.Handle(&CheckInMsg{}, CheckInHandler{auth})
	r.Handle(&ActivateMsg{}, ActivateHandler{})
	r.Handle(&ForceActivateMsg{}, ForceActivateHandler{auth})
	r.Handle(&ClaimMsg{}, ClaimHandler{auth, control})
	r.Handle(&ClaimAssetMsg{}, ClaimAssetHandler{auth, control})
	r.Handle(&RevokeMsg{}, RevokeHandler{auth, control})
	r.Handle(&OptInAssetMsg{}, OptInAssetHandler{auth, control})
	r.Handle(&LockAssetMsg{}, LockAssetHandler{auth, control})
}

// amountResult returns v as the big endian result data.
func amountResult(v uint64, log string) *heirloom.DeliverResult {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, v)
	return &heirloom.DeliverResult{Data: data, Log: log}
}

// ParseAmount decodes the data of a deposit, check in or claim result.
func ParseAmount(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "want 8 bytes, got %d", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// CreateHandler creates the will with the main signer as owner.
type CreateHandler struct {
	auth x.Authenticator
}

var _ heirloom.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: createCost}, nil
}

func (h CreateHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return &heirloom.DeliverResult{Log: "will created"}, nil
}

func (h CreateHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, error) {
	var msg CreateMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	now, err := heirloom.Now(ctx)
	if err != nil {
		return nil, err
	}
	caller := x.MainSignerAddress(ctx, h.auth)
	if err := w.Create(caller, now, msg.InactivityPeriod, msg.Beneficiaries, conf); err != nil {
		return nil, err
	}
	return w, nil
}

// DepositHandler moves native value from the owner to custody.
type DepositHandler struct {
	auth    x.Authenticator
	control bank.Controller
}

var _ heirloom.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, w, total, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, w.Owner, CustodyAddress, msg.Amount); err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return amountResult(total, fmt.Sprintf("deposited %d", msg.Amount.Amount)), nil
}

func (h DepositHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*DepositMsg, *Will, uint64, error) {
	var msg DepositMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, nil, 0, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, 0, err
	}
	total, err := w.Deposit(x.MainSignerAddress(ctx, h.auth), msg.Destination, msg.Amount, conf)
	if err != nil {
		return nil, nil, 0, err
	}
	return &msg, w, total, nil
}

// CheckInHandler restarts the inactivity countdown.
type CheckInHandler struct {
	auth x.Authenticator
}

var _ heirloom.Handler = CheckInHandler{}

func (h CheckInHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: checkInCost}, nil
}

func (h CheckInHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return amountResult(uint64(w.LastCheckin), "checked in"), nil
}

func (h CheckInHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, error) {
	var msg CheckInMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	now, err := heirloom.Now(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.CheckIn(x.MainSignerAddress(ctx, h.auth), now); err != nil {
		return nil, err
	}
	return w, nil
}

// ActivateHandler activates the inheritance once the deadline passed. It
// requires no signature.
type ActivateHandler struct{}

var _ heirloom.Handler = ActivateHandler{}

func (h ActivateHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: activateCost}, nil
}

func (h ActivateHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	heirloom.GetLogger(ctx).Info("inheritance activated", "owner", w.Owner)
	return &heirloom.DeliverResult{Log: "inheritance activated"}, nil
}

func (h ActivateHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, error) {
	var msg ActivateMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	now, err := heirloom.Now(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.Activate(now); err != nil {
		return nil, err
	}
	return w, nil
}

// ForceActivateHandler lets the owner activate the inheritance early.
type ForceActivateHandler struct {
	auth x.Authenticator
}

var _ heirloom.Handler = ForceActivateHandler{}

func (h ForceActivateHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: forceActivateCost}, nil
}

func (h ForceActivateHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	heirloom.GetLogger(ctx).Info("inheritance force activated", "owner", w.Owner)
	return &heirloom.DeliverResult{Log: "inheritance activated"}, nil
}

func (h ForceActivateHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, error) {
	var msg ForceActivateMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	if err := w.ForceActivate(x.MainSignerAddress(ctx, h.auth)); err != nil {
		return nil, err
	}
	return w, nil
}

// ClaimHandler pays a beneficiary its native share.
type ClaimHandler struct {
	auth    x.Authenticator
	control bank.Controller
}

var _ heirloom.Handler = ClaimHandler{}

func (h ClaimHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: claimCost}, nil
}

func (h ClaimHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, caller, payout, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// a zero share still consumes the slot
	if payout > 0 {
		if err := h.control.MoveCoins(db, CustodyAddress, caller, coin.Native(payout)); err != nil {
			return nil, err
		}
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return amountResult(payout, fmt.Sprintf("claimed %d", payout)), nil
}

func (h ClaimHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, heirloom.Address, uint64, error) {
	var msg ClaimMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, nil, 0, err
	}
	caller := x.MainSignerAddress(ctx, h.auth)
	payout, err := w.Claim(caller, msg.Slot)
	if err != nil {
		return nil, nil, 0, err
	}
	return w, caller, payout, nil
}

// ClaimAssetHandler pays a beneficiary its secondary asset allocation.
type ClaimAssetHandler struct {
	auth    x.Authenticator
	control bank.Controller
}

var _ heirloom.Handler = ClaimAssetHandler{}

func (h ClaimAssetHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: claimCost}, nil
}

func (h ClaimAssetHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, caller, units, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// bank refuses the transfer unless the beneficiary opted in
	if err := h.control.MoveCoins(db, CustodyAddress, caller, coin.NewCoin(units, w.LockedAssetID)); err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return amountResult(units, fmt.Sprintf("claimed %d units of asset %d", units, w.LockedAssetID)), nil
}

func (h ClaimAssetHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, heirloom.Address, uint64, error) {
	var msg ClaimAssetMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, nil, 0, err
	}
	caller := x.MainSignerAddress(ctx, h.auth)
	units, err := w.ClaimAsset(caller, msg.Slot)
	if err != nil {
		return nil, nil, 0, err
	}
	return w, caller, units, nil
}

// RevokeHandler cancels the will and refunds the owner.
type RevokeHandler struct {
	auth    x.Authenticator
	control bank.Controller
}

var _ heirloom.Handler = RevokeHandler{}

func (h RevokeHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: revokeCost}, nil
}

func (h RevokeHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, owner, refund, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if refund.Native > 0 {
		if err := h.control.MoveCoins(db, CustodyAddress, owner, coin.Native(refund.Native)); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	}
	if refund.AssetUnits > 0 {
		if err := h.control.MoveCoins(db, CustodyAddress, owner, coin.NewCoin(refund.AssetUnits, refund.AssetID)); err != nil {
			return nil, errors.Wrap(err, "asset refund")
		}
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return amountResult(refund.Native, "will revoked"), nil
}

func (h RevokeHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, heirloom.Address, Refund, error) {
	var msg RevokeMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, Refund{}, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, nil, Refund{}, err
	}
	owner := w.Owner
	refund, err := w.Revoke(x.MainSignerAddress(ctx, h.auth))
	if err != nil {
		return nil, nil, Refund{}, err
	}
	return w, owner, refund, nil
}

// OptInAssetHandler makes the custody wallet accept a secondary asset.
type OptInAssetHandler struct {
	auth    x.Authenticator
	control bank.Controller
}

var _ heirloom.Handler = OptInAssetHandler{}

func (h OptInAssetHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: optInAssetCost}, nil
}

func (h OptInAssetHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.OptIn(db, CustodyAddress, w.LockedAssetID); err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return &heirloom.DeliverResult{Log: fmt.Sprintf("custody opted in to asset %d", w.LockedAssetID)}, nil
}

func (h OptInAssetHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*Will, error) {
	var msg OptInAssetMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	caller := x.MainSignerAddress(ctx, h.auth)
	if err := w.requireManager(caller); err != nil {
		return nil, err
	}
	if _, err := h.control.Asset(db, msg.AssetID); err != nil {
		return nil, err
	}
	if err := w.OptInAsset(caller, msg.AssetID); err != nil {
		return nil, err
	}
	return w, nil
}

// LockAssetHandler moves secondary asset units from the owner to custody.
type LockAssetHandler struct {
	auth    x.Authenticator
	control bank.Controller
}

var _ heirloom.Handler = LockAssetHandler{}

func (h LockAssetHandler) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{GasAllocated: lockAssetCost}, nil
}

func (h LockAssetHandler) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, w.Owner, CustodyAddress, msg.Amount); err != nil {
		return nil, err
	}
	if err := saveWill(db, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	return &heirloom.DeliverResult{Log: fmt.Sprintf("locked %s", msg.Amount)}, nil
}

func (h LockAssetHandler) validate(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx) (*LockAssetMsg, *Will, error) {
	var msg LockAssetMsg
	if err := heirloom.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, nil, err
	}
	if err := w.LockAsset(x.MainSignerAddress(ctx, h.auth), msg.Destination, msg.Amount, msg.Allocations); err != nil {
		return nil, nil, err
	}
	return &msg, w, nil
}
