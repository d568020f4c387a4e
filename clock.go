package tracker

import "time"

// Clock abstracts the wall clock so that time-relative logic, like cache
// staleness, can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (sc SystemClock) Now() time.Time {
	return time.Now()
}
