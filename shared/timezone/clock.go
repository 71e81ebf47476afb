package timezone

import "time"

// Clock is the time source handed to services, so rules that depend on
// elapsed time can be driven from tests.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

// NewClock returns a Clock reading wall time in the application timezone.
func NewClock() Clock {
	return appClock{}
}

func (appClock) Now() time.Time {
	return Now()
}
