package will

import (
	"testing"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/heirloomtest/assert"
	"github.com/iov-one/heirloom/store"
)

func TestWillValidate(t *testing.T) {
	p := newParties()

	cases := map[string]struct {
		mutate func(*Will)
		want   *errors.Error
	}{
		"valid": {
			mutate: func(*Will) {},
		},
		"uninitialized with leftovers": {
			mutate: func(w *Will) { w.Created = false },
			want:   errors.ErrModel,
		},
		"percent sum changed": {
			mutate: func(w *Will) { w.Beneficiaries[2].Percent = 10 },
			want:   errors.ErrModel,
		},
		"claimed before activation": {
			mutate: func(w *Will) { w.Beneficiaries[0].Claimed = true },
			want:   errors.ErrModel,
		},
		"asset units without asset": {
			mutate: func(w *Will) { w.Beneficiaries[0].AssetAmount = 3 },
			want:   errors.ErrModel,
		},
		"empty slot with allocation": {
			mutate: func(w *Will) {
				w.Beneficiaries[2].Address = nil
			},
			want: errors.ErrModel,
		},
		"missing owner": {
			mutate: func(w *Will) { w.Owner = nil },
			want:   errors.ErrModel,
		},
		"missing period": {
			mutate: func(w *Will) { w.InactivityPeriod = 0 },
			want:   errors.ErrModel,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := createdWill(t, p)
			tc.mutate(w)
			err := w.Validate()
			if tc.want == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.want, err)
		})
	}

	var empty Will
	assert.Nil(t, empty.Validate())
}

func TestWillPersistence(t *testing.T) {
	db := store.MemStore()
	p := newParties()

	w, err := LoadWill(db)
	assert.Nil(t, err)
	assert.Equal(t, false, w.Created)

	w = createdWill(t, p)
	assert.Nil(t, w.OptInAsset(p.owner, 7))
	w.Beneficiaries[1].AssetAmount = 40
	assert.Nil(t, w.ForceActivate(p.owner))
	w.Beneficiaries[1].AssetClaimed = true
	assert.Nil(t, saveWill(db, w))

	loaded, err := LoadWill(db)
	assert.Nil(t, err)
	assert.Equal(t, w, loaded)

	// invalid records never reach the store
	loaded.Beneficiaries[0].Percent = 0
	assert.IsErr(t, errors.ErrModel, saveWill(db, loaded))

	assert.Nil(t, saveWill(db, &Will{}))
	has, err := db.Has(willKey)
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func TestCustodyAddress(t *testing.T) {
	want := heirloom.NewCondition("will", "custody", []byte("singleton")).Address()
	assert.Equal(t, want, CustodyAddress)
	assert.Nil(t, CustodyAddress.Validate())
}
