package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/config"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/ledger"
)

func TestEngine_LedgerFailureRollsBack(t *testing.T) {
	registry := newRegistry(t)
	l := ledger.NewLedgerMock()
	recorder := events.NewRecorder()
	e, err := New(config.Default(), registry, l, WithSink(recorder))
	require.NoError(t, err)

	l.On("Transfer", mock.Anything, alice, e.EscrowAccount(0), common.Balance(200), true).Return(nil).Once()
	l.On("Transfer", mock.Anything, bob, e.EscrowAccount(0), common.Balance(300), true).Return(ledger.ErrKeepAlive).Once()
	l.On("Transfer", mock.Anything, alice, e.EscrowAccount(1), common.Balance(150), true).Return(ledger.ErrInsufficientBalance).Once()

	id, err := e.Open(alice, 200, 1)
	require.NoError(t, err)

	err = e.Commit(bob, id, crypto.CommitSecret(9897), false, 1)
	assert.ErrorIs(t, err, ledger.ErrKeepAlive)

	c, err := e.Cycle(id)
	require.NoError(t, err)
	assert.Zero(t, c.GeneratorsCount)
	gs, err := e.Generators(id)
	require.NoError(t, err)
	assert.Empty(t, gs)

	_, err = e.Open(alice, 150, 2)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	n, err := registry.CycleCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	assert.Equal(t, 1, recorder.Len())
	l.AssertExpectations(t)
}
