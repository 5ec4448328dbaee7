package will

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/errors"
)

// Allocation names a beneficiary and its share of the native value.
type Allocation struct {
	Address heirloom.Address `json:"address"`
	Percent uint32           `json:"percent"`
}

// validateAllocations requires the percents to sum to exactly 100 and every
// funded slot to name a valid address.
func validateAllocations(slots [NumSlots]Allocation) error {
	var total uint32
	for i, s := range slots {
		if s.Percent > 100 {
			return errors.Wrapf(errors.ErrInput, "slot %d: percent %d", i+1, s.Percent)
		}
		total += s.Percent
	}
	if total != 100 {
		return errors.Wrapf(errors.ErrInput, "percentages must sum to 100, got %d", total)
	}
	for i, s := range slots {
		if s.Address.IsEmpty() {
			if s.Percent != 0 {
				return errors.Wrapf(errors.ErrInput, "slot %d: percent without address", i+1)
			}
			continue
		}
		if err := s.Address.Validate(); err != nil {
			return errors.Wrapf(err, "slot %d", i+1)
		}
	}
	return nil
}

func validSlot(slot uint32) error {
	if slot < 1 || slot > NumSlots {
		return errors.Wrapf(errors.ErrInput, "slot %d out of range", slot)
	}
	return nil
}

func (w *Will) requireCreated() error {
	if !w.Created {
		return errors.Wrap(errors.ErrState, "no will")
	}
	return nil
}

func (w *Will) requireNotActive() error {
	if w.InheritanceActive {
		return errors.Wrap(errors.ErrState, "inheritance is active")
	}
	return nil
}

func (w *Will) requireActive() error {
	if !w.InheritanceActive {
		return errors.Wrap(errors.ErrState, "inheritance not active")
	}
	return nil
}

func (w *Will) requireOwner(caller heirloom.Address) error {
	if caller.IsEmpty() || !w.Owner.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the owner")
	}
	return nil
}

// requireBeneficiary returns the slot if caller is its address.
func (w *Will) requireBeneficiary(caller heirloom.Address, slot uint32) (*Beneficiary, error) {
	b := &w.Beneficiaries[slot-1]
	if caller.IsEmpty() || !b.Address.Equals(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "not beneficiary %d", slot)
	}
	return b, nil
}

// Create initializes the will with the caller as owner.
func (w *Will) Create(caller heirloom.Address, now heirloom.UnixTime, period uint64, slots [NumSlots]Allocation, conf Configuration) error {
	if w.Created {
		return errors.Wrap(errors.ErrState, "will already created")
	}
	if caller.IsEmpty() {
		return errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	if period < conf.MinInactivitySeconds {
		return errors.Wrapf(errors.ErrInput, "inactivity period %ds below minimum %ds", period, conf.MinInactivitySeconds)
	}
	if period > maxInactivityPeriod {
		return errors.Wrapf(errors.ErrInput, "inactivity period %ds too long", period)
	}
	if err := validateAllocations(slots); err != nil {
		return err
	}

	*w = Will{
		Owner:            caller,
		InactivityPeriod: period,
		LastCheckin:      now,
		Created:          true,
	}
	for i, s := range slots {
		w.Beneficiaries[i] = Beneficiary{Address: s.Address, Percent: s.Percent}
	}
	return nil
}

// Deposit accounts native value sent by the owner to custody and returns the
// new total.
func (w *Will) Deposit(caller heirloom.Address, destination heirloom.Address, amount coin.Coin, conf Configuration) (uint64, error) {
	if err := w.requireCreated(); err != nil {
		return 0, err
	}
	if err := w.requireNotActive(); err != nil {
		return 0, err
	}
	if err := w.requireOwner(caller); err != nil {
		return 0, err
	}
	if !destination.Equals(CustodyAddress) {
		return 0, errors.Wrap(errors.ErrInput, "deposit must go to the will custody")
	}
	if !amount.IsNative() {
		return 0, errors.Wrap(errors.ErrInput, "deposit must be native value")
	}
	if amount.Amount < conf.MinDeposit {
		return 0, errors.Wrapf(errors.ErrInput, "minimum deposit is %d", conf.MinDeposit)
	}
	total, err := addAmount(w.TotalLocked, amount.Amount)
	if err != nil {
		return 0, err
	}
	w.TotalLocked = total
	return total, nil
}

// CheckIn proves the owner is alive and restarts the inactivity countdown.
func (w *Will) CheckIn(caller heirloom.Address, now heirloom.UnixTime) error {
	if err := w.requireCreated(); err != nil {
		return err
	}
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	if err := w.requireNotActive(); err != nil {
		return err
	}
	w.LastCheckin = now
	return nil
}

// Activate turns the inheritance on once the deadline has strictly passed.
// Anybody may call it.
func (w *Will) Activate(now heirloom.UnixTime) error {
	if err := w.requireCreated(); err != nil {
		return err
	}
	if err := w.requireNotActive(); err != nil {
		return err
	}
	deadline, err := w.Deadline()
	if err != nil {
		return err
	}
	if now <= deadline {
		return errors.Wrapf(errors.ErrState, "inactivity period not yet elapsed, deadline %d", deadline)
	}
	w.activate()
	return nil
}

// ForceActivate lets the owner turn the inheritance on at any time.
func (w *Will) ForceActivate(caller heirloom.Address) error {
	if err := w.requireCreated(); err != nil {
		return err
	}
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	if err := w.requireNotActive(); err != nil {
		return err
	}
	w.activate()
	return nil
}

func (w *Will) activate() {
	w.InheritanceActive = true
}

// Claim marks the slot paid and returns its share of the locked native value.
func (w *Will) Claim(caller heirloom.Address, slot uint32) (uint64, error) {
	if err := w.requireActive(); err != nil {
		return 0, err
	}
	if w.TotalLocked == 0 {
		return 0, errors.Wrap(errors.ErrState, "no funds to claim")
	}
	if err := validSlot(slot); err != nil {
		return 0, err
	}
	b, err := w.requireBeneficiary(caller, slot)
	if err != nil {
		return 0, err
	}
	if b.Claimed {
		return 0, errors.Wrapf(ErrAlreadyClaimed, "slot %d", slot)
	}
	payout, err := Share(w.TotalLocked, b.Percent)
	if err != nil {
		return 0, err
	}
	b.Claimed = true
	return payout, nil
}

// ClaimAsset marks the slot asset allocation paid and returns its units.
func (w *Will) ClaimAsset(caller heirloom.Address, slot uint32) (uint64, error) {
	if err := w.requireActive(); err != nil {
		return 0, err
	}
	if w.LockedAssetID == 0 {
		return 0, errors.Wrap(errors.ErrState, "no asset locked in this will")
	}
	if err := validSlot(slot); err != nil {
		return 0, err
	}
	b, err := w.requireBeneficiary(caller, slot)
	if err != nil {
		return 0, err
	}
	if b.AssetClaimed {
		return 0, errors.Wrapf(ErrAlreadyClaimed, "slot %d asset", slot)
	}
	if b.AssetAmount == 0 {
		return 0, errors.Wrapf(errors.ErrState, "no asset allocated to slot %d", slot)
	}
	b.AssetClaimed = true
	return b.AssetAmount, nil
}

// Refund is the value returned to the owner on revocation.
type Refund struct {
	Native     uint64
	AssetID    uint64
	AssetUnits uint64
}

// Revoke resets the will and returns what custody owes the owner.
func (w *Will) Revoke(caller heirloom.Address) (Refund, error) {
	if err := w.requireCreated(); err != nil {
		return Refund{}, err
	}
	if err := w.requireOwner(caller); err != nil {
		return Refund{}, err
	}
	if err := w.requireNotActive(); err != nil {
		return Refund{}, errors.Wrap(err, "cannot revoke after activation")
	}
	units, err := w.UnclaimedAssetUnits()
	if err != nil {
		return Refund{}, err
	}
	refund := Refund{Native: w.TotalLocked, AssetUnits: units}
	if units > 0 {
		refund.AssetID = w.LockedAssetID
	}
	*w = Will{}
	return refund, nil
}

// OptInAsset selects the secondary asset held by the will. The asset must
// exist, which the caller of this method verifies.
func (w *Will) OptInAsset(caller heirloom.Address, assetID uint64) error {
	if err := w.requireManager(caller); err != nil {
		return err
	}
	if assetID == coin.NativeAssetID {
		return errors.Wrap(errors.ErrInput, "native value needs no opt in")
	}
	if w.LockedAssetID != 0 && w.LockedAssetID != assetID {
		return errors.Wrapf(errors.ErrInput, "will already holds asset %d", w.LockedAssetID)
	}
	w.LockedAssetID = assetID
	return nil
}

// requireManager runs the guards shared by the owner only pre-activation
// asset operations.
func (w *Will) requireManager(caller heirloom.Address) error {
	if err := w.requireCreated(); err != nil {
		return err
	}
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	return w.requireNotActive()
}

// LockAsset accounts secondary asset units sent by the owner to custody,
// adding each allocation to its slot.
func (w *Will) LockAsset(caller heirloom.Address, destination heirloom.Address, amount coin.Coin, allocations [NumSlots]uint64) error {
	if err := w.requireCreated(); err != nil {
		return err
	}
	if err := w.requireNotActive(); err != nil {
		return err
	}
	if err := w.requireOwner(caller); err != nil {
		return err
	}
	if w.LockedAssetID == 0 {
		return errors.Wrap(errors.ErrState, "opt the will in to an asset first")
	}
	if amount.AssetID != w.LockedAssetID {
		return errors.Wrapf(errors.ErrInput, "asset %d does not match locked asset %d", amount.AssetID, w.LockedAssetID)
	}
	if !destination.Equals(CustodyAddress) {
		return errors.Wrap(errors.ErrInput, "transfer must go to the will custody")
	}
	total, err := sumAmounts(allocations[:]...)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if total == 0 {
		return errors.Wrap(errors.ErrInput, "nothing to lock")
	}
	if amount.Amount != total {
		return errors.Wrapf(errors.ErrInput, "transfer of %d does not equal allocations of %d", amount.Amount, total)
	}

	var updated [NumSlots]uint64
	for i, a := range allocations {
		b := w.Beneficiaries[i]
		if a != 0 && b.Address.IsEmpty() {
			return errors.Wrapf(errors.ErrInput, "slot %d has no beneficiary", i+1)
		}
		if updated[i], err = addAmount(b.AssetAmount, a); err != nil {
			return err
		}
	}
	for i := range updated {
		w.Beneficiaries[i].AssetAmount = updated[i]
	}
	return nil
}
