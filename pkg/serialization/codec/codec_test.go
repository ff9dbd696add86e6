package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Owner   [4]byte
	Amount  uint64
	Started uint32
	Count   uint8
	Flag    bool
}

func TestSCALECodec_Layout(t *testing.T) {
	c := NewSCALECodec()
	in := record{
		Owner:   [4]byte{0xde, 0xad, 0xbe, 0xef},
		Amount:  200,
		Started: 1,
		Count:   3,
		Flag:    true,
	}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0xde, 0xad, 0xbe, 0xef,
		200, 0, 0, 0, 0, 0, 0, 0,
		1, 0, 0, 0,
		3,
		1,
	}, b)

	var out record
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestJSONCodec_Indent(t *testing.T) {
	c := &JSONCodec{Indent: "  "}
	b, err := c.Marshal(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))

	var out map[string]int
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, 1, out["a"])
}
