package app

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet holds the keys or the values of a query response. Both halves of
// a response always hold the same number of results.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

// Marshal encodes the set for a query response.
func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

// Unmarshal decodes a set from a query response.
func (r *ResultSet) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, r); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []heirloom.Model) *ResultSet {
	return collect(models, func(m heirloom.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []heirloom.Model) *ResultSet {
	return collect(models, func(m heirloom.Model) []byte { return m.Value })
}

func collect(models []heirloom.Model, field func(heirloom.Model) []byte) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = field(m)
	}
	return res
}

// JoinResults pairs keys and values back into models.
func JoinResults(keys, values *ResultSet) ([]heirloom.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]heirloom.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = heirloom.Pair(k, values.Results[i])
	}
	return models, nil
}

// ParseQuery returns the models of a query response.
func ParseQuery(keys, values []byte) ([]heirloom.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return JoinResults(&k, &v)
}
