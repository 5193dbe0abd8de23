package news

import (
	"fmt"
	"time"
)

// Window is the publication span admitted by a run. Both ends are
// inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// DailyWindow ends at clock (time since midnight) on ref's calendar day in
// loc and starts 24 hours earlier.
func DailyWindow(ref time.Time, clock time.Duration, loc *time.Location) Window {
	y, m, d := ref.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc).Add(clock)
	return Window{Start: end.Add(-24 * time.Hour), End: end}
}

// Last24Hours ends at now.
func Last24Hours(now time.Time, loc *time.Location) Window {
	end := now.In(loc)
	return Window{Start: end.Add(-24 * time.Hour), End: end}
}

// Contains reports whether t lies in the window. A zero t never does.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) String() string {
	const layout = "02/01/2006 15:04"
	return fmt.Sprintf("%s – %s", w.Start.Format(layout), w.End.Format(layout))
}
