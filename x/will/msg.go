package will

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
)

const (
	pathCreateMsg        = "will/create"
	pathDepositMsg       = "will/deposit"
	pathCheckInMsg       = "will/check_in"
	pathActivateMsg      = "will/activate"
	pathForceActivateMsg = "will/force_activate"
	pathClaimMsg         = "will/claim"
	pathClaimAssetMsg    = "will/claim_asset"
	pathRevokeMsg        = "will/revoke"
	pathOptInAssetMsg    = "will/opt_in_asset"
	pathLockAssetMsg     = "will/lock_asset"
)

var (
	_ heirloom.Msg = (*CreateMsg)(nil)
	_ heirloom.Msg = (*DepositMsg)(nil)
	_ heirloom.Msg = (*CheckInMsg)(nil)
	_ heirloom.Msg = (*ActivateMsg)(nil)
	_ heirloom.Msg = (*ForceActivateMsg)(nil)
	_ heirloom.Msg = (*ClaimMsg)(nil)
	_ heirloom.Msg = (*ClaimAssetMsg)(nil)
	_ heirloom.Msg = (*RevokeMsg)(nil)
	_ heirloom.Msg = (*OptInAssetMsg)(nil)
	_ heirloom.Msg = (*LockAssetMsg)(nil)
)

// CreateMsg creates the will, signed by its owner.
type CreateMsg struct {
	InactivityPeriod uint64               `json:"inactivity_period"`
	Beneficiaries    [NumSlots]Allocation `json:"beneficiaries"`
}

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m CreateMsg) Validate() error {
	if m.InactivityPeriod == 0 {
		return errors.Wrap(errors.ErrInput, "missing inactivity period")
	}
	return validateAllocations(m.Beneficiaries)
}

// DepositMsg moves native value from the owner to the will custody.
type DepositMsg struct {
	Destination heirloom.Address `json:"destination"`
	Amount      coin.Coin        `json:"amount"`
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m DepositMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	return nil
}

// CheckInMsg is sent by the owner as a proof of liveness.
type CheckInMsg struct{}

func (CheckInMsg) Path() string {
	return pathCheckInMsg
}

func (CheckInMsg) Validate() error {
	return nil
}

// ActivateMsg activates the inheritance after the deadline. Anyone can send
// it.
type ActivateMsg struct{}

func (ActivateMsg) Path() string {
	return pathActivateMsg
}

func (ActivateMsg) Validate() error {
	return nil
}

// ForceActivateMsg lets the owner activate the inheritance early.
type ForceActivateMsg struct{}

func (ForceActivateMsg) Path() string {
	return pathForceActivateMsg
}

func (ForceActivateMsg) Validate() error {
	return nil
}

// ClaimMsg withdraws the native share of a beneficiary slot (1 to 3).
type ClaimMsg struct {
	Slot uint32 `json:"slot"`
}

func (ClaimMsg) Path() string {
	return pathClaimMsg
}

func (m ClaimMsg) Validate() error {
	return validSlot(m.Slot)
}

// ClaimAssetMsg withdraws the secondary asset allocation of a slot.
type ClaimAssetMsg struct {
	Slot uint32 `json:"slot"`
}

func (ClaimAssetMsg) Path() string {
	return pathClaimAssetMsg
}

func (m ClaimAssetMsg) Validate() error {
	return validSlot(m.Slot)
}

// RevokeMsg cancels the will and refunds the owner.
type RevokeMsg struct{}

func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

func (RevokeMsg) Validate() error {
	return nil
}

// OptInAssetMsg makes the will custody accept a secondary asset.
type OptInAssetMsg struct {
	AssetID uint64 `json:"asset_id"`
}

func (OptInAssetMsg) Path() string {
	return pathOptInAssetMsg
}

func (m OptInAssetMsg) Validate() error {
	if m.AssetID == coin.NativeAssetID {
		return errors.Wrap(errors.ErrInput, "native value needs no opt in")
	}
	return nil
}

// LockAssetMsg moves secondary asset units to the will custody and splits
// them between the slots.
type LockAssetMsg struct {
	Destination heirloom.Address `json:"destination"`
	Amount      coin.Coin        `json:"amount"`
	Allocations [NumSlots]uint64 `json:"allocations"`
}

func (LockAssetMsg) Path() string {
	return pathLockAssetMsg
}

func (m LockAssetMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount.IsNative() {
		return errors.Wrap(errors.ErrInput, "native value cannot be locked as asset")
	}
	if m.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	return nil
}
