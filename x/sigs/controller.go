package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the first field of the signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and increments the
// sequence of each signer. It fails on the first invalid signature and
// returns the signers otherwise, possibly none.
func VerifyTxSignatures(store heirloom.KVStore, tx SignedTx, chainID string) ([]heirloom.Condition, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	var signers []heirloom.Condition
	for _, sig := range tx.GetSignatures() {
		c, err := VerifySignature(store, sig, signBytes, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, c)
	}
	return signers, nil
}

// VerifySignature checks sig over signBytes for chainID. The sequence of
// the signature must be the next one of the signer, it is incremented in
// db on success.
func VerifySignature(db heirloom.KVStore, sig *StdSignature, signBytes []byte, chainID string) (heirloom.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.PubKey), digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	user, err := getOrCreateUser(db, sig.PubKey)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := saveUser(db, user); err != nil {
		return nil, err
	}
	return Condition(user.PubKey), nil
}

// BuildSignBytes returns the sha512 digest of
//
//   SignCodeV1 | len(chainID) uint8 | chainID | seq uint64 BE | signBytes
//
// which is what the ed25519 key signs.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !heirloom.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	payload := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(signBytes))
	payload = append(payload, SignCodeV1...)
	payload = append(payload, byte(len(chainID)))
	payload = append(payload, chainID...)
	payload = binary.BigEndian.AppendUint64(payload, uint64(seq))
	payload = append(payload, signBytes...)

	digest := sha512.Sum512(payload)
	return digest[:], nil
}

// SignTx signs tx with key for the given chain and sequence.
func SignTx(key ed25519.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		PubKey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, digest),
		Sequence:  seq,
	}, nil
}

// NextSequence is the sequence the next signature of addr must carry.
func NextSequence(db heirloom.ReadOnlyKVStore, addr heirloom.Address) (int64, error) {
	u, err := GetUser(db, addr)
	if err != nil || u == nil {
		return 0, err
	}
	return u.Sequence, nil
}
