package ticktime

import "errors"

var (
	// ErrMaxTickReached is returned when tick arithmetic would go past the
	// maximum representable tick.
	ErrMaxTickReached = errors.New("maximum tick reached")
)
