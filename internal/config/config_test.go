package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/escrow"
)

func TestLoad_Defaults(t *testing.T) {
	p, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
	assert.Equal(t, cycle.Timing{DelayBeforeBots: 3, DelayBeforeSecondPhase: 2, SecondPhaseDuration: 5}, p.Timing())
	assert.Equal(t, escrow.PalletAccount(p.PalletID), p.TreasuryAccount())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RNGDAO_MIN_BOUNTY", "500")
	t.Setenv("RNGDAO_MAX_GENERATORS", "10")
	t.Setenv("RNGDAO_TREASURY", "bob")

	p, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, common.Balance(500), p.MinBounty)
	assert.Equal(t, uint8(10), p.MaxGenerators)
	assert.Equal(t, common.DevAccount("bob"), p.TreasuryAccount())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rngdao.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
deposit: 1000
pallet_id: "rand_dao"
second_phase_duration: 20
existential_deposit: 10
`), 0o600))

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	p, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, common.Balance(1000), p.Deposit)
	assert.Equal(t, "rand_dao", p.PalletID.String())
	assert.Equal(t, uint32(20), p.SecondPhaseDuration)
	assert.Equal(t, common.Balance(10), p.ExistentialDeposit)
	assert.Equal(t, common.Balance(100), p.MinBounty)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"short pallet id", KeyPalletID, "rng"},
		{"zero generators", KeyMaxGenerators, 0},
		{"too many generators", KeyMaxGenerators, 256},
		{"deposit below existential deposit", KeyExistentialDeposit, 1000},
		{"bad treasury", KeyTreasury, "0xabcd"},
		{"no bot commit window", KeyDelayBeforeSecondPhase, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViper()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestParams_Validate_BotCommitWindow(t *testing.T) {
	for _, delay := range []uint32{0, 1} {
		p := Default()
		p.DelayBeforeSecondPhase = delay
		assert.ErrorIs(t, p.Validate(), ErrNoBotCommitWindow, "delay %d", delay)
	}

	p := Default()
	p.DelayBeforeSecondPhase = MinDelayBeforeSecondPhase
	assert.NoError(t, p.Validate())
}
