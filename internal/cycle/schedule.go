package cycle

import (
	"github.com/eigerco/rngdao/internal/ticktime"
)

// Timing holds the phase lengths, in ticks, shared by every cycle.
type Timing struct {
	DelayBeforeBots        uint32
	DelayBeforeSecondPhase uint32
	SecondPhaseDuration    uint32
}

// Schedule holds the phase boundaries of one cycle.
//
//	Started ... BotsAfter | ... RevealFrom | ... FinalizeFrom
//	humans commit          bots commit too   reveals          finalize
type Schedule struct {
	Started ticktime.Tick `json:"started"`
	// BotsAfter is the last tick on which bots are still refused.
	BotsAfter ticktime.Tick `json:"bots_after"`
	// RevealFrom is the first tick of the reveal phase, commitments are
	// locked from this tick on.
	RevealFrom ticktime.Tick `json:"reveal_from"`
	// FinalizeFrom is the first tick at which the creator may finalize.
	FinalizeFrom ticktime.Tick `json:"finalize_from"`
}

// NewSchedule computes the phase boundaries of a cycle started at started.
func NewSchedule(started ticktime.Tick, timing Timing) (Schedule, error) {
	botsAfter, err := started.Add(timing.DelayBeforeBots)
	if err != nil {
		return Schedule{}, err
	}
	revealFrom, err := botsAfter.Add(timing.DelayBeforeSecondPhase)
	if err != nil {
		return Schedule{}, err
	}
	finalizeFrom, err := revealFrom.Add(timing.SecondPhaseDuration)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		Started:      started,
		BotsAfter:    botsAfter,
		RevealFrom:   revealFrom,
		FinalizeFrom: finalizeFrom,
	}, nil
}

func (s Schedule) BotsAllowed(now ticktime.Tick) bool {
	return now > s.BotsAfter
}

func (s Schedule) CommitOpen(now ticktime.Tick) bool {
	return now < s.RevealFrom
}

func (s Schedule) RevealOpen(now ticktime.Tick) bool {
	return now >= s.RevealFrom
}

func (s Schedule) CanFinalize(now ticktime.Tick) bool {
	return now >= s.FinalizeFrom
}
