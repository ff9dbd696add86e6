package escrow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
)

var testPalletID = PalletID{'r', 'n', 'g', '_', 'd', 'a', 'o', '_'}

func TestSubAccount_Layout(t *testing.T) {
	a := SubAccount(testPalletID, 0x0102)

	assert.Equal(t, []byte("modlrng_dao_"), a[:12])
	assert.Equal(t, []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, a[12:20])
	assert.Equal(t, make([]byte, 12), a[20:])
}

func TestSubAccount_Deterministic(t *testing.T) {
	derive := NewDeriver(testPalletID)
	assert.Equal(t, SubAccount(testPalletID, 5), derive(5))
	assert.Equal(t, derive(5), derive(5))
}

func TestSubAccount_Distinct(t *testing.T) {
	seen := make(map[common.AccountID]cycle.ID)
	ids := []cycle.ID{0, 1, 2, 255, 256, 1 << 32, math.MaxUint64}
	for _, id := range ids {
		a := SubAccount(testPalletID, id)
		prev, dup := seen[a]
		assert.False(t, dup, "cycle %d collides with %d", id, prev)
		seen[a] = id
	}

	assert.NotEqual(t, PalletAccount(testPalletID), SubAccount(testPalletID, 0))
	assert.NotEqual(t, PalletAccount(testPalletID), SubAccount(testPalletID, math.MaxUint64))
	other := PalletID{'o', 't', 'h', 'e', 'r', '_', '_', '_'}
	assert.NotEqual(t, SubAccount(testPalletID, 1), SubAccount(other, 1))
}

func TestParsePalletID(t *testing.T) {
	id, err := ParsePalletID("rng_dao_")
	assert.NoError(t, err)
	assert.Equal(t, testPalletID, id)
	assert.Equal(t, "rng_dao_", id.String())

	_, err = ParsePalletID("short")
	assert.Error(t, err)
}
