package will

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
}

// RegisterAmino registers the records and messages of this package.
// Applications building their own codec for transactions must call it as
// well.
func RegisterAmino(c *amino.Codec) {
	c.RegisterConcrete(&Will{}, "will/Will", nil)
	c.RegisterConcrete(&Configuration{}, "will/Configuration", nil)
	c.RegisterConcrete(&CreateMsg{}, "will/CreateMsg", nil)
	c.RegisterConcrete(&DepositMsg{}, "will/DepositMsg", nil)
	c.RegisterConcrete(&CheckInMsg{}, "will/CheckInMsg", nil)
	c.RegisterConcrete(&ActivateMsg{}, "will/ActivateMsg", nil)
	c.RegisterConcrete(&ForceActivateMsg{}, "will/ForceActivateMsg", nil)
	c.RegisterConcrete(&ClaimMsg{}, "will/ClaimMsg", nil)
	c.RegisterConcrete(&ClaimAssetMsg{}, "will/ClaimAssetMsg", nil)
	c.RegisterConcrete(&RevokeMsg{}, "will/RevokeMsg", nil)
	c.RegisterConcrete(&OptInAssetMsg{}, "will/OptInAssetMsg", nil)
	c.RegisterConcrete(&LockAssetMsg{}, "will/LockAssetMsg", nil)
}
