package clock

import "time"

// Clock supplies the current date to business logic so that date-sensitive
// rules (future-year check, past/upcoming windows) stay testable.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func System() Clock {
	return systemClock{}
}

func (systemClock) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Fixed returns a clock pinned to the given date.
type Fixed time.Time

func (f Fixed) Today() time.Time {
	t := time.Time(f)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
