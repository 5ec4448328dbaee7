package will

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

const (
	// NumSlots is the fixed number of beneficiary slots of a will.
	NumSlots = 3

	maxInactivityPeriod = 1 << 40
)

var willKey = []byte("will:singleton")

// CustodyAddress holds all value locked in the will.
var CustodyAddress = heirloom.NewCondition("will", "custody", []byte("singleton")).Address()

// Status is the lifecycle stage of the will as seen at a given time.
type Status string

const (
	StatusNoWill            Status = "NO_WILL"
	StatusAlive             Status = "ALIVE"
	StatusReadyToActivate   Status = "READY_TO_ACTIVATE"
	StatusInheritanceActive Status = "INHERITANCE_ACTIVE"
)

// Beneficiary is a single allocation slot.
type Beneficiary struct {
	Address heirloom.Address `json:"address"`
	Percent uint32           `json:"percent"`
	Claimed bool             `json:"claimed"`

	AssetAmount  uint64 `json:"asset_amount"`
	AssetClaimed bool   `json:"asset_claimed"`
}

func (b *Beneficiary) validate() error {
	if b.Percent > 100 {
		return errors.Wrapf(errors.ErrModel, "percent %d", b.Percent)
	}
	if b.Address.IsEmpty() {
		if b.Percent != 0 || b.AssetAmount != 0 || b.Claimed || b.AssetClaimed {
			return errors.Wrap(errors.ErrModel, "empty slot with allocation")
		}
		return nil
	}
	if err := b.Address.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// Will is the singleton record. A zero value is an uninitialized will.
type Will struct {
	Owner             heirloom.Address  `json:"owner"`
	InactivityPeriod  uint64            `json:"inactivity_period"`
	LastCheckin       heirloom.UnixTime `json:"last_checkin"`
	InheritanceActive bool              `json:"inheritance_active"`
	Created           bool              `json:"will_created"`
	TotalLocked       uint64            `json:"total_locked"`

	Beneficiaries [NumSlots]Beneficiary `json:"beneficiaries"`

	// LockedAssetID is the secondary asset held in custody, 0 when none.
	LockedAssetID uint64 `json:"locked_asset_id"`
}

// Validate checks the record invariants.
func (w *Will) Validate() error {
	if !w.Created {
		if !w.isZero() {
			return errors.Wrap(errors.ErrModel, "uninitialized will carries state")
		}
		return nil
	}
	if err := w.Owner.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "owner: "+err.Error())
	}
	if w.InactivityPeriod == 0 || w.InactivityPeriod > maxInactivityPeriod {
		return errors.Wrapf(errors.ErrModel, "inactivity period %d", w.InactivityPeriod)
	}
	if err := w.LastCheckin.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "last checkin: "+err.Error())
	}
	var percents uint32
	for i := range w.Beneficiaries {
		b := &w.Beneficiaries[i]
		if err := b.validate(); err != nil {
			return errors.Wrapf(err, "slot %d", i+1)
		}
		if !w.InheritanceActive && (b.Claimed || b.AssetClaimed) {
			return errors.Wrapf(errors.ErrModel, "slot %d claimed before activation", i+1)
		}
		if w.LockedAssetID == 0 && b.AssetAmount != 0 {
			return errors.Wrapf(errors.ErrModel, "slot %d holds asset units without a locked asset", i+1)
		}
		percents += b.Percent
	}
	if percents != 100 {
		return errors.Wrapf(errors.ErrModel, "percents sum to %d", percents)
	}
	return nil
}

func (w *Will) isZero() bool {
	if len(w.Owner) != 0 || w.InactivityPeriod != 0 || w.LastCheckin != 0 ||
		w.InheritanceActive || w.TotalLocked != 0 || w.LockedAssetID != 0 {
		return false
	}
	for _, b := range w.Beneficiaries {
		if len(b.Address) != 0 || b.Percent != 0 || b.Claimed || b.AssetAmount != 0 || b.AssetClaimed {
			return false
		}
	}
	return true
}

// Deadline returns the moment after which the will can be activated.
func (w *Will) Deadline() (heirloom.UnixTime, error) {
	return w.LastCheckin.AddSeconds(w.InactivityPeriod)
}

// Status returns the lifecycle stage at the given time.
func (w *Will) Status(now heirloom.UnixTime) (Status, error) {
	switch {
	case !w.Created:
		return StatusNoWill, nil
	case w.InheritanceActive:
		return StatusInheritanceActive, nil
	}
	deadline, err := w.Deadline()
	if err != nil {
		return "", err
	}
	if now > deadline {
		return StatusReadyToActivate, nil
	}
	return StatusAlive, nil
}

// TimeRemaining returns the seconds left until the deadline, or zero if it
// has passed.
func (w *Will) TimeRemaining(now heirloom.UnixTime) (uint64, error) {
	deadline, err := w.Deadline()
	if err != nil {
		return 0, err
	}
	if now >= deadline {
		return 0, nil
	}
	return uint64(deadline - now), nil
}

// UnclaimedAssetUnits returns the secondary asset units still in custody for
// the beneficiaries.
func (w *Will) UnclaimedAssetUnits() (uint64, error) {
	var units []uint64
	for _, b := range w.Beneficiaries {
		if !b.AssetClaimed {
			units = append(units, b.AssetAmount)
		}
	}
	return sumAmounts(units...)
}

// Marshal encodes the record for storage.
func (w *Will) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

// Unmarshal decodes a stored record.
func (w *Will) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, w)
}

// LoadWill returns the stored will. When nothing is stored an uninitialized
// will is returned.
func LoadWill(db heirloom.ReadOnlyKVStore) (*Will, error) {
	raw, err := db.Get(willKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var w Will
	if raw == nil {
		return &w, nil
	}
	if err := w.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &w, nil
}

// saveWill persists a valid will. An uninitialized will removes the record.
func saveWill(db heirloom.KVStore, w *Will) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if !w.Created {
		return db.Delete(willKey)
	}
	raw, err := w.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal will")
	}
	return db.Set(willKey, raw)
}
