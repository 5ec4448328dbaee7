package utils

import (
	"context"
	"testing"

	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	cases := map[string]struct {
		savepoint Savepoint
		check     bool
		fail      bool
		wantKept  bool
	}{
		"deliver savepoint keeps successful writes": {
			savepoint: NewSavepoint().OnDeliver(),
			wantKept:  true,
		},
		"deliver savepoint drops failed writes": {
			savepoint: NewSavepoint().OnDeliver(),
			fail:      true,
			wantKept:  false,
		},
		"no check savepoint leaves failed writes": {
			savepoint: NewSavepoint().OnDeliver(),
			check:     true,
			fail:      true,
			wantKept:  true,
		},
		"check savepoint drops failed writes": {
			savepoint: NewSavepoint().OnCheck(),
			check:     true,
			fail:      true,
			wantKept:  false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()
			key := []byte("will")

			h := writeHandler{key: key}
			if tc.fail {
				h.err = errors.Wrap(errors.ErrState, "fail")
			}

			var err error
			if tc.check {
				_, err = tc.savepoint.Check(ctx, db, pathTx{}, h)
			} else {
				_, err = tc.savepoint.Deliver(ctx, db, pathTx{}, h)
			}
			if tc.fail {
				assert.True(t, errors.ErrState.Is(err))
			} else {
				require.NoError(t, err)
			}

			has, err := db.Has(key)
			require.NoError(t, err)
			assert.Equal(t, tc.wantKept, has)
		})
	}
}
