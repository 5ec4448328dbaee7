package will

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// RegisterQuery will register the will record as "/will" and the time
// based projections below it.
func RegisterQuery(qr heirloom.QueryRouter) {
	qr.Register("/will", recordQuery{})
	qr.Register("/will/status", projectionQuery{project: statusValue})
	qr.Register("/will/time_remaining", projectionQuery{project: timeRemainingValue})
	qr.Register("/will/balance", projectionQuery{project: balanceValue})
	qr.Register("/will/summary", projectionQuery{project: summaryValue})
}

// Summary combines all read only projections of the will.
type Summary struct {
	Status        Status `json:"status"`
	TimeRemaining uint64 `json:"time_remaining"`
	LockedBalance uint64 `json:"locked_balance"`
	Will          *Will  `json:"will,omitempty"`
}

// Summarize computes the projections of w at the given time.
func Summarize(w *Will, now heirloom.UnixTime) (*Summary, error) {
	status, err := w.Status(now)
	if err != nil {
		return nil, err
	}
	remaining, err := w.TimeRemaining(now)
	if err != nil {
		return nil, err
	}
	s := &Summary{
		Status:        status,
		TimeRemaining: remaining,
		LockedBalance: w.TotalLocked,
	}
	if w.Created {
		s.Will = w
	}
	return s, nil
}

// recordQuery returns the stored will, or nothing when there is none.
type recordQuery struct{}

func (recordQuery) Query(_ heirloom.Context, db heirloom.ReadOnlyKVStore, mod string, _ []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	if !w.Created {
		return nil, nil
	}
	raw, err := cdc.MarshalJSON(w)
	if err != nil {
		return nil, errors.Wrap(err, "marshal will")
	}
	return []heirloom.Model{heirloom.Pair(willKey, raw)}, nil
}

// projectionQuery evaluates the will at the time of the last block.
type projectionQuery struct {
	project func(*Summary) interface{}
}

func (q projectionQuery) Query(ctx heirloom.Context, db heirloom.ReadOnlyKVStore, mod string, _ []byte) ([]heirloom.Model, error) {
	if mod != heirloom.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	w, err := LoadWill(db)
	if err != nil {
		return nil, err
	}
	now, err := heirloom.Now(ctx)
	if err != nil {
		return nil, err
	}
	s, err := Summarize(w, now)
	if err != nil {
		return nil, err
	}
	raw, err := cdc.MarshalJSON(q.project(s))
	if err != nil {
		return nil, errors.Wrap(err, "marshal projection")
	}
	return []heirloom.Model{heirloom.Pair(willKey, raw)}, nil
}

func statusValue(s *Summary) interface{}        { return s.Status }
func timeRemainingValue(s *Summary) interface{} { return s.TimeRemaining }
func balanceValue(s *Summary) interface{}       { return s.LockedBalance }
func summaryValue(s *Summary) interface{}       { return s }
