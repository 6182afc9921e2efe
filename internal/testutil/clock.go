package testutil

import "time"

// FixedClock returns a now function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
