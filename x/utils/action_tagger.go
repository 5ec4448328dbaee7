package utils

import (
	"github.com/iov-one/heirloom"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which the message path is published.
const ActionKey = "action"

// ActionTagger tags every successful DeliverTx with action=<msg path>, so
// clients can subscribe to a single kind of will operation.
type ActionTagger struct{}

var _ heirloom.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

func (ActionTagger) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, actionTag(msg.Path()))
	return res, nil
}

func actionTag(path string) common.KVPair {
	return common.KVPair{Key: []byte(ActionKey), Value: []byte(path)}
}
