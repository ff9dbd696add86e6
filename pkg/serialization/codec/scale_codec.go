package codec

import "github.com/ChainSafe/gossamer/pkg/scale"

// SCALECodec implements the Codec interface for SCALE encoding and decoding.
// Fixed width integers are little endian, structs are the concatenation of
// their fields in declaration order.
type SCALECodec struct{}

func NewSCALECodec() *SCALECodec {
	return &SCALECodec{}
}

func (s *SCALECodec) Marshal(v interface{}) ([]byte, error) {
	return scale.Marshal(v)
}

func (s *SCALECodec) Unmarshal(data []byte, v interface{}) error {
	return scale.Unmarshal(data, v)
}
