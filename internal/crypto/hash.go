package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

type Hash [HashSize]byte

func HashData(data []byte) Hash {
	hash := blake2b.Sum256(data)
	return hash
}

// KeccakData hashes the input data using Keccak-256
func KeccakData(data []byte) Hash {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	hashed := hash.Sum(nil)

	var result Hash
	copy(result[:], hashed)
	return result
}

// SecretBytes is the little endian encoding of a generator secret.
func SecretBytes(secret uint64) []byte {
	b := make([]byte, SecretSize)
	binary.LittleEndian.PutUint64(b, secret)
	return b
}

// CommitSecret returns the commitment a generator publishes for secret.
func CommitSecret(secret uint64) Hash {
	return KeccakData(SecretBytes(secret))
}

// Blake2_128Concat returns blake2b-128(data) followed by data itself, so keys
// stay evenly spread while the original value can still be read back.
func Blake2_128Concat(data []byte) []byte {
	h, err := blake2b.New(Blake2_128Size, nil)
	if err != nil {
		// only returned for invalid sizes or keys
		panic(err)
	}
	h.Write(data)

	out := make([]byte, 0, Blake2_128Size+len(data))
	out = h.Sum(out)
	return append(out, data...)
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash parses a hex string, with or without 0x prefix, into a Hash.
func ParseHash(s string) (Hash, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash: %w", err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("decode hash: expected %d bytes, got %d", HashSize, len(b))
	}
	return Hash(b), nil
}
