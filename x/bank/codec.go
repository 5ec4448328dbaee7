package bank

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
}

// RegisterAmino registers the models and messages of this package.
func RegisterAmino(c *amino.Codec) {
	c.RegisterConcrete(&Wallet{}, "bank/Wallet", nil)
	c.RegisterConcrete(&Asset{}, "bank/Asset", nil)
	c.RegisterConcrete(&SendMsg{}, "bank/SendMsg", nil)
	c.RegisterConcrete(&OptInMsg{}, "bank/OptInMsg", nil)
}
