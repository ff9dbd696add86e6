package engine

import (
	"errors"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/safemath"
	"github.com/eigerco/rngdao/internal/store"
	"github.com/eigerco/rngdao/internal/ticktime"
)

// Commit registers caller as a generator of cycle id with the commitment
// hash, locking the deposit in escrow. Bots may only commit once the bot
// delay has passed, nobody may commit once reveals have opened.
func (e *Engine) Commit(caller common.AccountID, id cycle.ID, hash crypto.Hash, isBot bool, now ticktime.Tick) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.apply(opCommit, id, func(tx *store.Tx) error {
		c, err := tx.GetCycle(id)
		if err != nil {
			return err
		}
		if c.Status.IsFinal() {
			return ErrCycleAlreadyFinalized
		}

		_, err = tx.GetGenerator(id, caller)
		if err == nil {
			return ErrAlreadyCommitted
		}
		if !errors.Is(err, store.ErrGeneratorNotFound) {
			return err
		}

		count, ok := safemath.Add8(c.GeneratorsCount, 1)
		if !ok || count > e.params.MaxGenerators {
			return ErrMaxGeneratorsReached
		}

		s, err := e.schedule(c)
		if err != nil {
			return err
		}
		if isBot && !s.BotsAllowed(now) {
			return ErrBotsNotAllowedYet
		}
		if !s.CommitOpen(now) {
			return ErrCommitPhaseEnded
		}

		c.GeneratorsCount = count
		if err := tx.PutCycle(id, c); err != nil {
			return err
		}
		if err := tx.PutGenerator(id, caller, cycle.Generator{Hash: hash, IsBot: isBot}); err != nil {
			return err
		}
		return e.ledger.Transfer(tx.KV(), caller, e.escrow(id), e.params.Deposit, true)
	})
	if err != nil {
		return err
	}

	e.log.Debug().
		Uint64("cycle_id", uint64(id)).
		Stringer("sender", caller).
		Stringer("hash", hash).
		Bool("bot", isBot).
		Msg("hash received")
	e.metrics.HashCommitted(isBot)
	e.sink.Notify(events.HashReceived{CycleID: id, Sender: caller, Hash: hash})
	return nil
}
