package engine

import (
	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/store"
	"github.com/eigerco/rngdao/internal/ticktime"
)

// Sweep moves whatever is left in the escrow of a finalized cycle to the
// treasury: rounding remainders of the bounty and deposits of generators
// that never revealed.
func (e *Engine) Sweep(caller common.AccountID, id cycle.ID, now ticktime.Tick) (common.Balance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	treasury := e.params.TreasuryAccount()
	var amount common.Balance
	err := e.apply(opSweep, id, func(tx *store.Tx) error {
		c, err := tx.GetCycle(id)
		if err != nil {
			return err
		}
		if caller != c.Creator {
			return ErrNotAuthorizedToSweep
		}
		if !c.Status.IsFinal() {
			return ErrCycleNotFinalized
		}

		amount, err = e.ledger.Balance(tx.KV(), e.escrow(id))
		if err != nil {
			return err
		}
		if amount == 0 {
			return ErrNothingToSweep
		}
		return e.ledger.Transfer(tx.KV(), e.escrow(id), treasury, amount, false)
	})
	if err != nil {
		return 0, err
	}

	e.log.Info().
		Uint64("cycle_id", uint64(id)).
		Stringer("destination", treasury).
		Uint64("amount", uint64(amount)).
		Uint32("tick", uint32(now)).
		Msg("escrow swept")
	e.metrics.EscrowSwept(uint64(amount))
	e.sink.Notify(events.EscrowSwept{CycleID: id, Destination: treasury, Amount: amount})
	return amount, nil
}
