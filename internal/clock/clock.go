// Package clock abstracts time so rate-window resets can be tested
// deterministically.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock, always UTC.
func System() Clock {
	return systemClock{}
}
