package clock

import "time"

// Clock is the time source injected into services. Message timestamps
// and join times come from here, so tests can pin them to a fixed
// instant.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New returns the system-clock implementation
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current wall-clock time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
