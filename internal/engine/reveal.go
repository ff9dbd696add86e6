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

// Reveal discloses the secret behind caller's commitment. A matching secret
// is mixed into the cycle's random number and the caller is paid its share
// of the bounty plus its deposit back. A mismatch changes nothing and may be
// retried.
//
// isBot does not affect reveals, it is accepted for symmetry with Commit.
func (e *Engine) Reveal(caller common.AccountID, id cycle.ID, secret uint64, isBot bool, now ticktime.Tick) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var payout common.Balance
	err := e.apply(opReveal, id, func(tx *store.Tx) error {
		c, err := tx.GetCycle(id)
		if err != nil {
			return err
		}
		if c.Status.IsFinal() {
			return ErrCycleAlreadyFinalized
		}

		s, err := e.schedule(c)
		if err != nil {
			return err
		}
		if !s.RevealOpen(now) {
			return ErrSecondPhaseNotStartedYet
		}

		g, err := tx.GetGenerator(id, caller)
		if errors.Is(err, store.ErrGeneratorNotFound) {
			return ErrNotSubmittedHashInFirstPhase
		}
		if err != nil {
			return err
		}
		if crypto.CommitSecret(secret) != g.Hash {
			return ErrSecretDoesNotMatchHash
		}

		revealed, ok := safemath.Add8(c.RevealedCount, 1)
		if !ok {
			return ErrArithmeticOverflow
		}
		shares, ok := safemath.Add8(c.GeneratorsCount, 1)
		if !ok {
			return ErrArithmeticOverflow
		}
		share, ok := safemath.Div64(uint64(c.Bounty), uint64(shares))
		if !ok {
			return ErrArithmeticUnderflow
		}
		total, ok := safemath.Add64(share, uint64(e.params.Deposit))
		if !ok {
			return ErrArithmeticOverflow
		}
		payout = common.Balance(total)

		c.RevealedCount = revealed
		c.RandomNumber ^= secret
		if err := tx.PutCycle(id, c); err != nil {
			return err
		}
		if err := e.ledger.Transfer(tx.KV(), e.escrow(id), caller, payout, false); err != nil {
			return err
		}
		return tx.RemoveGenerator(id, caller)
	})
	if err != nil {
		return err
	}

	e.log.Debug().
		Uint64("cycle_id", uint64(id)).
		Stringer("sender", caller).
		Bool("bot", isBot).
		Uint64("payout", uint64(payout)).
		Msg("secret received")
	e.metrics.SecretRevealed(uint64(payout))
	e.sink.Notify(events.SecretReceived{CycleID: id, Sender: caller})
	return nil
}
