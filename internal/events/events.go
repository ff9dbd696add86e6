package events

import (
	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/cycle"
)

// Event is a notification emitted after an operation has been committed.
type Event interface {
	Name() string
	Cycle() cycle.ID
}

type CycleCreated struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Bounty  common.Balance   `json:"bounty"`
	Creator common.AccountID `json:"creator"`
}

type HashReceived struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Sender  common.AccountID `json:"sender"`
	Hash    crypto.Hash      `json:"hash"`
}

type SecretReceived struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Sender  common.AccountID `json:"sender"`
}

type CycleCompleted struct {
	CycleID      cycle.ID         `json:"cycle_id"`
	Creator      common.AccountID `json:"creator"`
	RandomNumber uint64           `json:"random_number"`
}

type CycleFailed struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Creator common.AccountID `json:"creator"`
}

// EscrowSwept reports residual escrow funds moved out after finalization.
type EscrowSwept struct {
	CycleID     cycle.ID         `json:"cycle_id"`
	Destination common.AccountID `json:"destination"`
	Amount      common.Balance   `json:"amount"`
}

func (CycleCreated) Name() string   { return "CycleCreated" }
func (HashReceived) Name() string   { return "HashReceived" }
func (SecretReceived) Name() string { return "SecretReceived" }
func (CycleCompleted) Name() string { return "CycleCompleted" }
func (CycleFailed) Name() string    { return "CycleFailed" }
func (EscrowSwept) Name() string    { return "EscrowSwept" }

func (e CycleCreated) Cycle() cycle.ID   { return e.CycleID }
func (e HashReceived) Cycle() cycle.ID   { return e.CycleID }
func (e SecretReceived) Cycle() cycle.ID { return e.CycleID }
func (e CycleCompleted) Cycle() cycle.ID { return e.CycleID }
func (e CycleFailed) Cycle() cycle.ID    { return e.CycleID }
func (e EscrowSwept) Cycle() cycle.ID    { return e.CycleID }
