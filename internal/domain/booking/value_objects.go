package booking

import (
	"fmt"
	"time"
)

// StayPeriod is a half-open calendar date range [start, end): the tenant
// checks in on start and checks out on end, so a stay ending on a given
// day does not collide with one starting that day. Dates are normalized
// to midnight UTC.
type StayPeriod struct {
	start time.Time
	end   time.Time
}

func NewStayPeriod(start, end time.Time) (StayPeriod, error) {
	start = toDate(start)
	end = toDate(end)
	if !start.Before(end) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{start: start, end: end}, nil
}

func ReconstructStayPeriod(start, end time.Time) StayPeriod {
	return StayPeriod{start: toDate(start), end: toDate(end)}
}

func (p StayPeriod) Start() time.Time { return p.start }
func (p StayPeriod) End() time.Time   { return p.end }

func (p StayPeriod) Nights() int {
	return int(p.end.Sub(p.start).Hours() / 24)
}

// Overlaps is the sole overlap predicate: two periods overlap iff each
// starts before the other ends. Periods sharing only a boundary day do
// not overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

// ValidateStartAfter rejects stays beginning on or before the given day.
// Applied once, at booking request time.
func (p StayPeriod) ValidateStartAfter(today time.Time) error {
	if !p.start.After(toDate(today)) {
		return ErrStartNotInFuture
	}
	return nil
}

// HasStarted reports whether the stay's first day has arrived.
func (p StayPeriod) HasStarted(today time.Time) bool {
	return !toDate(today).Before(p.start)
}

// CompletedBy reports whether the stay is over: the checkout day has
// been reached.
func (p StayPeriod) CompletedBy(now time.Time) bool {
	return p.end.Before(now)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format("2006-01-02"), p.end.Format("2006-01-02"))
}

func toDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
