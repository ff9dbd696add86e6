package ticktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_Add(t *testing.T) {
	t.Run("within range", func(t *testing.T) {
		got, err := Tick(1).Add(3)
		require.NoError(t, err)
		assert.Equal(t, Tick(4), got)
	})

	t.Run("up to max", func(t *testing.T) {
		got, err := (MaxTick - 2).Add(2)
		require.NoError(t, err)
		assert.Equal(t, MaxTick, got)
	})

	t.Run("past max", func(t *testing.T) {
		_, err := MaxTick.Add(1)
		assert.ErrorIs(t, err, ErrMaxTickReached)
	})
}

func TestTick_NextTick(t *testing.T) {
	assert.Equal(t, Tick(2), Tick(1).NextTick())
	assert.Equal(t, MaxTick, MaxTick.NextTick())
}

func TestTick_Since(t *testing.T) {
	assert.Equal(t, uint32(5), Tick(6).Since(1))
	assert.Equal(t, uint32(0), Tick(1).Since(1))
	assert.Equal(t, uint32(0), Tick(1).Since(6))
}
