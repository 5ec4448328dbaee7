package will

import (
	"github.com/iov-one/heirloom/errors"
)

// ErrAlreadyClaimed is returned when a beneficiary slot was already paid out.
var ErrAlreadyClaimed = errors.Register(1000, "already claimed")
