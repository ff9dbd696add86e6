package engine

import (
	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/store"
	"github.com/eigerco/rngdao/internal/ticktime"
)

// Finalize closes cycle id once the reveal phase is over. Only the creator
// may finalize. A cycle without any generator or without any reveal fails
// and its bounty is refunded to the creator, otherwise the random number is
// published.
func (e *Engine) Finalize(caller common.AccountID, id cycle.ID, now ticktime.Tick) (cycle.Cycle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var c cycle.Cycle
	err := e.apply(opFinalize, id, func(tx *store.Tx) (err error) {
		c, err = tx.GetCycle(id)
		if err != nil {
			return err
		}
		if caller != c.Creator {
			return ErrNotAuthorizedToFinalize
		}
		s, err := e.schedule(c)
		if err != nil {
			return err
		}
		if !s.CanFinalize(now) {
			return ErrTooEarlyToFinalize
		}
		if c.Status.IsFinal() {
			return ErrCycleAlreadyFinalized
		}

		if c.GeneratorsCount == 0 || c.RevealedCount == 0 {
			c.Status = cycle.CompletedWithFailure
			if err := tx.PutCycle(id, c); err != nil {
				return err
			}
			return e.ledger.Transfer(tx.KV(), e.escrow(id), c.Creator, c.Bounty, false)
		}

		c.Status = cycle.CompletedWithSuccess
		return tx.PutCycle(id, c)
	})
	if err != nil {
		return cycle.Cycle{}, err
	}

	success := c.Status == cycle.CompletedWithSuccess
	e.log.Info().
		Uint64("cycle_id", uint64(id)).
		Stringer("status", c.Status).
		Uint8("generators", c.GeneratorsCount).
		Uint8("revealed", c.RevealedCount).
		Msg("cycle finalized")
	e.metrics.CycleFinalized(success)
	if success {
		e.sink.Notify(events.CycleCompleted{CycleID: id, Creator: c.Creator, RandomNumber: c.RandomNumber})
	} else {
		e.sink.Notify(events.CycleFailed{CycleID: id, Creator: c.Creator})
	}
	return c, nil
}
