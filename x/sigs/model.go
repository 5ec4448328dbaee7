package sigs

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the state kept for every address that ever signed a
// transaction.
type UserData struct {
	PubKey   []byte `json:"pub_key"`
	Sequence int64  `json:"sequence"`
}

// Validate checks the sequence is sane and bound to a public key.
func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && len(u.PubKey) == 0 {
		return errors.Wrap(ErrInvalidSequence, "needs public key")
	}
	if len(u.PubKey) != 0 && len(u.PubKey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrModel, "public key of %d bytes", len(u.PubKey))
	}
	return nil
}

// Marshal serializes the user data.
func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

// Unmarshal loads the user data from its binary form.
func (u *UserData) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, u); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// maxSequenceValue is limited by the client. The greatest supported
	// nonce value at client side is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// SetPubKey will try to set the public key or panic on an illegal operation.
// It is illegal to reset an already set key.
func (u *UserData) SetPubKey(pubkey []byte) {
	if len(u.PubKey) != 0 {
		panic("Cannot change pubkey for a user")
	}
	u.PubKey = pubkey
}

// Condition returns the condition fulfilled by a signature of the given key.
func Condition(pubkey []byte) heirloom.Condition {
	return heirloom.NewCondition("sigs", "ed25519", pubkey)
}

func userKey(addr heirloom.Address) []byte {
	return append([]byte(BucketName+":"), addr...)
}

// GetUser loads the user data stored for an address. A nil value is returned
// when the address never signed anything.
func GetUser(db heirloom.ReadOnlyKVStore, addr heirloom.Address) (*UserData, error) {
	raw, err := db.Get(userKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if raw == nil {
		return nil, nil
	}
	var u UserData
	if err := u.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &u, nil
}

// getOrCreateUser returns the stored user for the key, or a new one bound to it.
func getOrCreateUser(db heirloom.ReadOnlyKVStore, pubkey []byte) (*UserData, error) {
	u, err := GetUser(db, Condition(pubkey).Address())
	if err != nil || u != nil {
		return u, err
	}
	u = &UserData{}
	u.SetPubKey(pubkey)
	return u, nil
}

func saveUser(db heirloom.KVStore, u *UserData) error {
	if err := u.Validate(); err != nil {
		return err
	}
	raw, err := u.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal user")
	}
	return db.Set(userKey(Condition(u.PubKey).Address()), raw)
}
