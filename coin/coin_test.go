package coin

import (
	"math"
	"testing"

	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/heirloomtest/assert"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		sum     Coin
		sumErr  *errors.Error
		diff    Coin
		diffErr *errors.Error
	}{
		"native": {
			a:    Native(5_000_000),
			b:    Native(2_000_000),
			sum:  Native(7_000_000),
			diff: Native(3_000_000),
		},
		"different assets": {
			a:       NewCoin(10, 1),
			b:       NewCoin(10, 2),
			sumErr:  errors.ErrType,
			diffErr: errors.ErrType,
		},
		"overflow": {
			a:      Native(math.MaxUint64),
			b:      Native(1),
			sumErr: errors.ErrOverflow,
			diff:   Native(math.MaxUint64 - 1),
		},
		"underflow": {
			a:       NewCoin(1, 7),
			b:       NewCoin(2, 7),
			sum:     NewCoin(3, 7),
			diffErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			if tc.sumErr != nil {
				assert.IsErr(t, tc.sumErr, err)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tc.sum, sum)
			}

			diff, err := tc.a.Subtract(tc.b)
			if tc.diffErr != nil {
				assert.IsErr(t, tc.diffErr, err)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tc.diff, diff)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "100", Native(100).String())
	assert.Equal(t, "5#3", NewCoin(5, 3).String())
}
