package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/escrow"
)

const (
	KeyMinBounty              = "min_bounty"
	KeyDeposit                = "deposit"
	KeyPalletID               = "pallet_id"
	KeyDelayBeforeBots        = "delay_before_bots"
	KeyDelayBeforeSecondPhase = "delay_before_second_phase"
	KeySecondPhaseDuration    = "second_phase_duration"
	KeyMaxGenerators          = "max_generators"
	KeyExistentialDeposit     = "existential_deposit"
	KeyTreasury               = "treasury"

	EnvPrefix = "RNGDAO"
)

var (
	ErrZeroMaxGenerators       = errors.New("max_generators must be at least 1")
	ErrDepositBelowExistence   = errors.New("deposit must not be below the existential deposit")
	ErrMinBountyBelowExistence = errors.New("min_bounty must not be below the existential deposit")
	ErrNoBotCommitWindow       = errors.New("delay_before_second_phase must be at least 2 so bots can commit")
)

// MinDelayBeforeSecondPhase leaves bots at least one tick to commit between
// the end of the bot delay and the start of the reveal phase.
const MinDelayBeforeSecondPhase = 2

// Params are the engine constants shared by every cycle.
type Params struct {
	MinBounty              common.Balance
	Deposit                common.Balance
	PalletID               escrow.PalletID
	DelayBeforeBots        uint32
	DelayBeforeSecondPhase uint32
	SecondPhaseDuration    uint32
	MaxGenerators          uint8
	ExistentialDeposit     common.Balance
	// Treasury receives swept escrow funds, the pallet account if zero.
	Treasury common.AccountID
}

// Default returns the parameters of the reference runtime.
func Default() Params {
	return Params{
		MinBounty:              100,
		Deposit:                300,
		PalletID:               escrow.PalletID{'r', 'n', 'g', '_', 'd', 'a', 'o', '_'},
		DelayBeforeBots:        3,
		DelayBeforeSecondPhase: 2,
		SecondPhaseDuration:    5,
		MaxGenerators:          3,
		ExistentialDeposit:     0,
	}
}

func (p Params) Timing() cycle.Timing {
	return cycle.Timing{
		DelayBeforeBots:        p.DelayBeforeBots,
		DelayBeforeSecondPhase: p.DelayBeforeSecondPhase,
		SecondPhaseDuration:    p.SecondPhaseDuration,
	}
}

func (p Params) TreasuryAccount() common.AccountID {
	if p.Treasury.IsZero() {
		return escrow.PalletAccount(p.PalletID)
	}
	return p.Treasury
}

func (p Params) Validate() error {
	if p.MaxGenerators == 0 {
		return ErrZeroMaxGenerators
	}
	if p.DelayBeforeSecondPhase < MinDelayBeforeSecondPhase {
		return ErrNoBotCommitWindow
	}
	if p.Deposit < p.ExistentialDeposit {
		return ErrDepositBelowExistence
	}
	if p.MinBounty < p.ExistentialDeposit {
		return ErrMinBountyBelowExistence
	}
	return nil
}

// NewViper returns a viper instance with defaults set and environment
// variables (RNGDAO_MIN_BOUNTY, ...) bound.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyMinBounty, uint64(d.MinBounty))
	v.SetDefault(KeyDeposit, uint64(d.Deposit))
	v.SetDefault(KeyPalletID, d.PalletID.String())
	v.SetDefault(KeyDelayBeforeBots, d.DelayBeforeBots)
	v.SetDefault(KeyDelayBeforeSecondPhase, d.DelayBeforeSecondPhase)
	v.SetDefault(KeySecondPhaseDuration, d.SecondPhaseDuration)
	v.SetDefault(KeyMaxGenerators, uint(d.MaxGenerators))
	v.SetDefault(KeyExistentialDeposit, uint64(d.ExistentialDeposit))
	v.SetDefault(KeyTreasury, "")
}

// Load reads Params out of v and validates them.
func Load(v *viper.Viper) (Params, error) {
	palletID, err := escrow.ParsePalletID(v.GetString(KeyPalletID))
	if err != nil {
		return Params{}, err
	}

	maxGenerators := v.GetUint(KeyMaxGenerators)
	if maxGenerators > math.MaxUint8 {
		return Params{}, fmt.Errorf("%s: %d exceeds %d", KeyMaxGenerators, maxGenerators, math.MaxUint8)
	}

	p := Params{
		MinBounty:              common.Balance(v.GetUint64(KeyMinBounty)),
		Deposit:                common.Balance(v.GetUint64(KeyDeposit)),
		PalletID:               palletID,
		DelayBeforeBots:        v.GetUint32(KeyDelayBeforeBots),
		DelayBeforeSecondPhase: v.GetUint32(KeyDelayBeforeSecondPhase),
		SecondPhaseDuration:    v.GetUint32(KeySecondPhaseDuration),
		MaxGenerators:          uint8(maxGenerators),
		ExistentialDeposit:     common.Balance(v.GetUint64(KeyExistentialDeposit)),
	}

	if treasury := v.GetString(KeyTreasury); treasury != "" {
		p.Treasury, err = common.ResolveAccount(treasury)
		if err != nil {
			return Params{}, fmt.Errorf("%s: %w", KeyTreasury, err)
		}
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
