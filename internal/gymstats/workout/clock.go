package workout

import "time"

// Clock provides the current time, so session dates stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock time in UTC.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().UTC()
})
