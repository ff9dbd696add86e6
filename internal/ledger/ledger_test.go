package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/pkg/db"
	"github.com/eigerco/rngdao/pkg/db/pebble"
)

var (
	alice = common.DevAccount("alice")
	bob   = common.DevAccount("bob")
)

func TestBalances_Transfer(t *testing.T) {
	kv := newKV(t)
	b := NewBalances(0)
	require.NoError(t, b.Mint(kv, alice, 1000))

	require.NoError(t, b.Transfer(kv, alice, bob, 150, true))
	assertBalance(t, b, kv, alice, 850)
	assertBalance(t, b, kv, bob, 150)

	// Draining an account is fine without an existential deposit
	require.NoError(t, b.Transfer(kv, bob, alice, 150, true))
	assertBalance(t, b, kv, bob, 0)
	assertBalance(t, b, kv, alice, 1000)
}

func TestBalances_InsufficientBalance(t *testing.T) {
	kv := newKV(t)
	b := NewBalances(0)
	require.NoError(t, b.Mint(kv, alice, 100))

	err := b.Transfer(kv, alice, bob, 101, false)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assertBalance(t, b, kv, alice, 100)
	assertBalance(t, b, kv, bob, 0)
}

func TestBalances_ZeroAndSelfTransfer(t *testing.T) {
	kv := newKV(t)
	b := NewBalances(0)

	require.NoError(t, b.Transfer(kv, alice, bob, 0, true))
	require.NoError(t, b.Mint(kv, alice, 10))
	require.NoError(t, b.Transfer(kv, alice, alice, 10, true))
	assertBalance(t, b, kv, alice, 10)
}

func TestBalances_ExistentialDeposit(t *testing.T) {
	b := NewBalances(10)

	t.Run("keep alive refuses to kill sender", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, b.Mint(kv, alice, 100))

		assert.ErrorIs(t, b.Transfer(kv, alice, bob, 95, true), ErrKeepAlive)
		assert.ErrorIs(t, b.Transfer(kv, alice, bob, 100, true), ErrKeepAlive)
		require.NoError(t, b.Transfer(kv, alice, bob, 90, true))
		assertBalance(t, b, kv, alice, 10)
	})

	t.Run("sender below deposit is reaped", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, b.Mint(kv, alice, 100))

		require.NoError(t, b.Transfer(kv, alice, bob, 95, false))
		assertBalance(t, b, kv, alice, 0)
		assertBalance(t, b, kv, bob, 95)
	})

	t.Run("receiver must reach deposit", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, b.Mint(kv, alice, 100))

		assert.ErrorIs(t, b.Transfer(kv, alice, bob, 5, false), ErrExistentialDeposit)
		assert.ErrorIs(t, b.Mint(kv, bob, 5), ErrExistentialDeposit)
	})
}

func TestBalances_Overflow(t *testing.T) {
	kv := newKV(t)
	b := NewBalances(0)
	require.NoError(t, b.Mint(kv, alice, math.MaxUint64))
	require.NoError(t, b.Mint(kv, bob, 1))

	assert.ErrorIs(t, b.Mint(kv, alice, 1), ErrBalanceOverflow)
	assert.ErrorIs(t, b.Transfer(kv, bob, alice, 1, false), ErrBalanceOverflow)
}

func TestBalances_DiscardedBatch(t *testing.T) {
	kv := newKV(t)
	b := NewBalances(0)
	require.NoError(t, b.Mint(kv, alice, 1000))

	batch := kv.NewBatch()
	require.NoError(t, b.Transfer(batch, alice, bob, 400, true))
	assertBalance(t, b, batch, bob, 400)
	require.NoError(t, batch.Close())

	assertBalance(t, b, kv, alice, 1000)
	assertBalance(t, b, kv, bob, 0)
}

func assertBalance(t *testing.T, b *Balances, r db.Reader, who common.AccountID, want common.Balance) {
	t.Helper()
	got, err := b.Balance(r, who)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func newKV(t *testing.T) db.KVStore {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}
