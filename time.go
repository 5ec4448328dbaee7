package heirloom

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/iov-one/heirloom/errors"
)

// UnixTime is a block time in whole seconds since the epoch. The host
// truncates the block time to seconds before any extension reads it.
type UnixTime int64

const maxUnixTime = UnixTime(1<<63 - 1)

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns t in UTC.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add moves t by d, truncated to seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AddSeconds moves t forward by sec seconds. It returns ErrOverflow when the
// result does not fit.
func (t UnixTime) AddSeconds(sec uint64) (UnixTime, error) {
	if sec > uint64(maxUnixTime-t) {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %ds", t, sec)
	}
	return t + UnixTime(sec), nil
}

// Validate rejects times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().String()
}

// UnmarshalJSON accepts a number of seconds, the same number as a quoted
// decimal string (amino JSON writes int64 that way) or an RFC 3339 string,
// the latter being easier to write in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	sec, err := parseSeconds(raw)
	if err != nil {
		return err
	}
	if sec < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(sec)
	return nil
}

func parseSeconds(raw []byte) (int64, error) {
	var sec int64
	if err := json.Unmarshal(raw, &sec); err == nil {
		return sec, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, errors.Wrap(errors.ErrInput, "invalid time format")
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sec, nil
	}
	std, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInput, "invalid time format")
	}
	return std.Unix(), nil
}
