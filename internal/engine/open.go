package engine

import (
	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/store"
	"github.com/eigerco/rngdao/internal/ticktime"
)

// Open starts a new cycle funded with bounty, moved from the creator into
// the cycle escrow.
func (e *Engine) Open(creator common.AccountID, bounty common.Balance, now ticktime.Tick) (cycle.ID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if bounty < e.params.MinBounty {
		e.metrics.OperationRejected(opOpen, rejectReason(ErrBountyTooLow))
		return 0, ErrBountyTooLow
	}

	var id cycle.ID
	err := e.registry.Update(func(tx *store.Tx) (err error) {
		id, err = tx.AllocateID()
		if err != nil {
			return err
		}
		if err := tx.PutCycle(id, cycle.New(creator, bounty, now)); err != nil {
			return err
		}
		return e.ledger.Transfer(tx.KV(), creator, e.escrow(id), bounty, true)
	})
	if err != nil {
		e.metrics.OperationRejected(opOpen, rejectReason(err))
		e.log.Debug().Err(err).Str("op", opOpen).Stringer("creator", creator).Msg("operation rejected")
		return 0, err
	}

	e.log.Info().
		Uint64("cycle_id", uint64(id)).
		Stringer("creator", creator).
		Uint64("bounty", uint64(bounty)).
		Uint32("tick", uint32(now)).
		Msg("cycle opened")
	e.metrics.CycleOpened(uint64(bounty))
	e.sink.Notify(events.CycleCreated{CycleID: id, Bounty: bounty, Creator: creator})
	return id, nil
}
