package sigs

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// RegisterQuery will register the signer state as "/auth"
func RegisterQuery(qr heirloom.QueryRouter) {
	qr.Register("/auth", userQuery{})
}

// userQuery returns the json encoded user data of the address in data.
type userQuery struct{}

func (userQuery) Query(_ heirloom.Context, db heirloom.ReadOnlyKVStore, mod string, data []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	addr := heirloom.Address(data)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	u, err := GetUser(db, addr)
	if err != nil || u == nil {
		return nil, err
	}
	raw, err := cdc.MarshalJSON(u)
	if err != nil {
		return nil, errors.Wrap(err, "marshal user")
	}
	return []heirloom.Model{heirloom.Pair(userKey(addr), raw)}, nil
}
