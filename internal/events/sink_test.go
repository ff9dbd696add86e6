package events

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
)

var alice = common.DevAccount("alice")

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.Nil(t, r.Last())

	r.Notify(CycleCreated{CycleID: 0, Bounty: 150, Creator: alice})
	r.Notify(CycleFailed{CycleID: 0, Creator: alice})

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, CycleFailed{CycleID: 0, Creator: alice}, r.Last())

	evs := r.Events()
	evs[0] = nil
	assert.NotNil(t, r.Events()[0], "Events must return a copy")
}

func TestFanout(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	f := Fanout{a, Discard{}, b}

	e := SecretReceived{CycleID: 3, Sender: alice}
	f.Notify(e)

	assert.Equal(t, e, a.Last())
	assert.Equal(t, e, b.Last())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(zerolog.New(&buf))

	h := crypto.CommitSecret(807)
	s.Notify(HashReceived{CycleID: 2, Sender: alice, Hash: h})

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "HashReceived", line["event"])
	assert.EqualValues(t, 2, line["cycle_id"])
	assert.Equal(t, alice.String(), line["sender"])
	assert.Equal(t, h.String(), line["hash"])
}

func TestEvent_JSON(t *testing.T) {
	b, err := json.Marshal(CycleCompleted{CycleID: 1, Creator: alice, RandomNumber: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cycle_id":1,"creator":"`+alice.String()+`","random_number":42}`, string(b))
}
