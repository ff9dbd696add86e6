package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevAccount(t *testing.T) {
	alice := DevAccount("alice")
	assert.Equal(t, alice, DevAccount("Alice"))
	assert.NotEqual(t, alice, DevAccount("bob"))
	assert.False(t, alice.IsZero())
}

func TestResolveAccount(t *testing.T) {
	alice := DevAccount("alice")

	got, err := ResolveAccount(alice.String())
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	got, err = ResolveAccount("alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = ResolveAccount("0x1234")
	assert.Error(t, err)

	_, err = ResolveAccount("")
	assert.Error(t, err)
}

func TestAccountID_JSON(t *testing.T) {
	type wrapper struct {
		Who AccountID `json:"who"`
	}
	in := wrapper{Who: DevAccount("bob")}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), in.Who.String())

	var out wrapper
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
