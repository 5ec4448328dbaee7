package app

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/x/bank"
	"github.com/iov-one/heirloom/x/sigs"
	"github.com/iov-one/heirloom/x/will"
	amino "github.com/tendermint/go-amino"
)

// TxCodec encodes transactions. Every message a node accepts must be
// registered with it.
var TxCodec = amino.NewCodec()

func init() {
	TxCodec.RegisterInterface((*heirloom.Msg)(nil), nil)
	sigs.RegisterAmino(TxCodec)
	bank.RegisterAmino(TxCodec)
	will.RegisterAmino(TxCodec)
}

// Tx is the transaction format of heirloomd: a single message and the
// signatures authorizing it.
type Tx struct {
	Msg        heirloom.Msg         `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ heirloom.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps msg into an unsigned transaction.
func NewTx(msg heirloom.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the wrapped message.
func (tx *Tx) GetMsg() (heirloom.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures collected so far.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes should only come from the data itself, not previous
	// signatures
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := TxCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal parses a transaction serialized by Marshal.
func (tx *Tx) Unmarshal(raw []byte) error {
	if err := TxCodec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (heirloom.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}
