package heirloomtest

import (
	"crypto/rand"

	"github.com/iov-one/heirloom"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a fresh ed25519 key pair.
func NewKey() (ed25519.PublicKey, ed25519.PrivateKey) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return pub, priv
}

// NewCondition returns a signature condition for a freshly generated key.
func NewCondition() heirloom.Condition {
	pub, _ := NewKey()
	return heirloom.NewCondition("sigs", "ed25519", pub)
}
