// Package clock abstracts the current time so that expiry logic can be tested
// deterministically.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Later returns the current time advanced by the given number of seconds.
	Later(seconds int) time.Time
}

// System is the wall clock, in UTC.
type System struct{}

var _ Clock = System{}

func (System) Now() time.Time { return time.Now().UTC() }

func (s System) Later(seconds int) time.Time {
	return s.Now().Add(time.Duration(seconds) * time.Second)
}

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

var _ Clock = Fixed{}

func (f Fixed) Now() time.Time { return f.T }

func (f Fixed) Later(seconds int) time.Time {
	return f.T.Add(time.Duration(seconds) * time.Second)
}
