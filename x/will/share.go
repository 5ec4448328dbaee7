package will

import (
	"math/bits"

	"github.com/iov-one/heirloom/errors"
)

// Share returns floor(total * percent / 100). The product is computed on 128
// bits so it never overflows for any total.
func Share(total uint64, percent uint32) (uint64, error) {
	if percent > 100 {
		return 0, errors.Wrapf(errors.ErrInput, "percent %d", percent)
	}
	hi, lo := bits.Mul64(total, uint64(percent))
	// hi < 100 because percent <= 100, so Div64 cannot panic
	q, _ := bits.Div64(hi, lo, 100)
	return q, nil
}

// addAmount returns a + b or ErrOverflow.
func addAmount(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// sumAmounts adds all values, failing on overflow.
func sumAmounts(values ...uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		var err error
		if total, err = addAmount(total, v); err != nil {
			return 0, err
		}
	}
	return total, nil
}
