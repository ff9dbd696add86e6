package cycle

import (
	"fmt"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/ticktime"
)

// ID identifies a cycle. IDs are handed out sequentially starting at zero.
type ID uint64

// Status of a cycle. Only Active cycles accept commitments and reveals.
type Status uint8

const (
	Active Status = iota
	CompletedWithSuccess
	CompletedWithFailure
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case CompletedWithSuccess:
		return "completed"
	case CompletedWithFailure:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "active":
		*s = Active
	case "completed":
		*s = CompletedWithSuccess
	case "failed":
		*s = CompletedWithFailure
	default:
		return fmt.Errorf("unknown cycle status %q", text)
	}
	return nil
}

// IsFinal reports whether the cycle has been finalized.
func (s Status) IsFinal() bool {
	return s != Active
}

// Cycle is one round of the commit-reveal protocol.
type Cycle struct {
	Creator         common.AccountID `json:"creator"`
	Bounty          common.Balance   `json:"bounty"`
	Started         ticktime.Tick    `json:"started"`
	GeneratorsCount uint8            `json:"generators_count"`
	RevealedCount   uint8            `json:"revealed_count"`
	// RandomNumber is only meaningful once Status is CompletedWithSuccess.
	RandomNumber uint64 `json:"random_number"`
	Status       Status `json:"status"`
}

// New returns an active cycle with zeroed counters.
func New(creator common.AccountID, bounty common.Balance, started ticktime.Tick) Cycle {
	return Cycle{
		Creator: creator,
		Bounty:  bounty,
		Started: started,
		Status:  Active,
	}
}

// Generator is the commitment a single account made in a cycle.
type Generator struct {
	// Secret is a placeholder, secrets are never stored before reveal.
	Secret uint64      `json:"-"`
	Hash   crypto.Hash `json:"hash"`
	IsBot  bool        `json:"is_bot"`
}
