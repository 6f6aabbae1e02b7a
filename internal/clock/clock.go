// Package clock abstracts "now" so timeline math and plan timestamps are
// deterministic under test.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
