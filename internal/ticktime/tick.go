package ticktime

import (
	"math"

	"github.com/eigerco/rngdao/internal/safemath"
)

// Tick is a value of the host's logical clock. Ticks are supplied by the
// caller and never advanced here.
type Tick uint32

const MaxTick = Tick(math.MaxUint32)

// Add returns t advanced by d ticks.
func (t Tick) Add(d uint32) (Tick, error) {
	v, ok := safemath.Add32(uint32(t), d)
	if !ok {
		return 0, ErrMaxTickReached
	}
	return Tick(v), nil
}

// NextTick returns the next tick, saturating at MaxTick.
func (t Tick) NextTick() Tick {
	if t == MaxTick {
		return t
	}
	return t + 1
}

// Since reports how many ticks passed between start and t, zero if t is
// before start.
func (t Tick) Since(start Tick) uint32 {
	if t < start {
		return 0
	}
	return uint32(t - start)
}
