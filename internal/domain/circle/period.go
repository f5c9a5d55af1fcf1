package circle

import (
	"time"

	"github.com/lockin/backend/internal/domain/shared"
)

// Window is a half-open time interval [Start, End) in UTC
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// OverlapSeconds returns the number of seconds the interval
// [start, end) spends inside the window. Intervals outside the window
// contribute zero.
func (w Window) OverlapSeconds(start, end time.Time) int64 {
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	if !start.Before(end) {
		return 0
	}
	return int64(end.Sub(start).Seconds())
}

// PeriodWindow computes the goal window containing now for the given
// IANA timezone and period. Daily windows run from local midnight to
// the next local midnight; weekly windows run from Monday 00:00 local
// to the following Monday 00:00 local. Boundaries are computed via
// calendar arithmetic so DST transitions yield 23h or 25h days rather
// than drifting the midnight boundary.
func PeriodWindow(timezone string, period GoalPeriod, now time.Time) (Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Window{}, shared.NewDomainError("INVALID_TIMEZONE", "Unknown IANA timezone: "+timezone)
	}

	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch period {
	case GoalPeriodDaily:
		return Window{
			Start: midnight.UTC(),
			End:   midnight.AddDate(0, 0, 1).UTC(),
		}, nil
	case GoalPeriodWeekly:
		// time.Weekday puts Sunday at 0; shift so Monday is 0.
		offset := (int(local.Weekday()) + 6) % 7
		monday := midnight.AddDate(0, 0, -offset)
		return Window{
			Start: monday.UTC(),
			End:   monday.AddDate(0, 0, 7).UTC(),
		}, nil
	default:
		return Window{}, shared.NewDomainError("INVALID_PERIOD", "Goal period must be 'daily' or 'weekly'")
	}
}
