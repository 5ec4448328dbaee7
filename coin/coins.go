package coin

import (
	"sort"

	"github.com/iov-one/heirloom/errors"
)

// Coins is a wallet content. A normalized Coins is sorted by asset id and
// holds no duplicate and no zero coin. Every method returning Coins keeps
// it normalized and leaves the receiver untouched.
type Coins []Coin

// CombineCoins adds up cs into a normalized Coins, in any input order.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	return append(make(Coins, 0, len(cs)), cs...)
}

// Add returns the coins increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.search(c.AssetID)
	if !found {
		res = append(res, Coin{})
		copy(res[i+1:], res[i:])
		res[i] = c
		return res, nil
	}
	sum, err := res[i].Add(c)
	if err != nil {
		return nil, err
	}
	res[i] = sum
	return res, nil
}

// Subtract returns the coins decreased by c. An asset drained to zero is
// removed.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.search(c.AssetID)
	if !found {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no asset %d", c.AssetID)
	}
	rest, err := res[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	if rest.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = rest
	return res, nil
}

// Contains reports whether the coins cover c. A zero c is always covered.
func (cs Coins) Contains(c Coin) bool {
	return c.IsZero() || cs.Amount(c.AssetID) >= c.Amount
}

// Amount is the quantity held of the asset, zero when absent.
func (cs Coins) Amount(assetID uint64) uint64 {
	if i, found := cs.search(assetID); found {
		return cs[i].Amount
	}
	return 0
}

// search returns the index of the asset, or the index where it would be
// inserted when it is absent.
func (cs Coins) search(assetID uint64) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].AssetID >= assetID })
	return i, i < len(cs) && cs[i].AssetID == assetID
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

func (cs Coins) Equals(other Coins) bool {
	if len(cs) != len(other) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

// Validate checks the coins are normalized.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c.IsZero() {
			return errors.Wrapf(errors.ErrState, "zero coin of asset %d", c.AssetID)
		}
		if i > 0 && cs[i-1].AssetID >= c.AssetID {
			return errors.Wrap(errors.ErrState, "not sorted")
		}
	}
	return nil
}
