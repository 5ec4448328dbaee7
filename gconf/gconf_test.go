package gconf

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/heirloomtest/assert"
	"github.com/iov-one/heirloom/store"
)

type limits struct {
	Min int `json:"min"`
}

func (l *limits) Validate() error {
	if l.Min <= 0 {
		return errors.Wrap(errors.ErrInput, "min must be positive")
	}
	return nil
}

func (l *limits) Marshal() ([]byte, error) {
	return []byte(strconv.Itoa(l.Min)), nil
}

func (l *limits) Unmarshal(raw []byte) error {
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	l.Min = n
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limits
	assert.IsErr(t, errors.ErrNotFound, Load(db, "will", &got))

	assert.IsErr(t, errors.ErrInput, Save(db, "will", &limits{Min: 0}))
	assert.Nil(t, Save(db, "will", &limits{Min: 60}))
	assert.Nil(t, Load(db, "will", &got))
	assert.Equal(t, 60, got.Min)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantMin int
	}{
		"loaded": {
			genesis: `{"conf": {"will": {"min": 120}}}`,
			wantMin: 120,
		},
		"package missing": {
			genesis: `{"conf": {"bank": {}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid value": {
			genesis: `{"conf": {"will": {"min": -1}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts heirloom.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "will", &limits{})
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var got limits
			assert.Nil(t, Load(db, "will", &got))
			assert.Equal(t, tc.wantMin, got.Min)
		})
	}
}
