package sigs

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
}

// RegisterAmino registers the persisted types of this package. Applications
// building their own codec for transactions must call it as well.
func RegisterAmino(c *amino.Codec) {
	c.RegisterConcrete(&UserData{}, "sigs/UserData", nil)
	c.RegisterConcrete(&StdSignature{}, "sigs/StdSignature", nil)
}
