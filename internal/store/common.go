package store

import (
	"encoding/binary"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/cycle"
)

const (
	ErrFailedBatchCommit = "failed to commit batch: %w"
)

// Prefix constants for all store types. Values from 0x10 upwards are
// reserved for the ledger.
const (
	prefixCycleCount byte = iota + 1
	prefixCycle
	prefixGenerator
)

// PrefixToString converts a prefix byte to a string
func PrefixToString(p byte) string {
	switch p {
	case prefixCycleCount:
		return "cycleCount"
	case prefixCycle:
		return "cycle"
	case prefixGenerator:
		return "generator"
	default:
		return "unknown"
	}
}

// makeKey creates a key from a prefix and a hashed sub key
func makeKey(prefix byte, parts ...[]byte) []byte {
	size := 1
	for _, p := range parts {
		size += len(p)
	}
	key := make([]byte, 1, size)
	key[0] = prefix
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func encodeID(id cycle.ID) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(id))
	return b
}

func counterKey() []byte {
	return []byte{prefixCycleCount}
}

func cycleKey(id cycle.ID) []byte {
	return makeKey(prefixCycle, crypto.Blake2_128Concat(encodeID(id)))
}

func generatorPrefix(id cycle.ID) []byte {
	return makeKey(prefixGenerator, crypto.Blake2_128Concat(encodeID(id)))
}

func generatorKey(id cycle.ID, who common.AccountID) []byte {
	return makeKey(prefixGenerator, crypto.Blake2_128Concat(encodeID(id)), crypto.Blake2_128Concat(who[:]))
}

// idFromCycleKey reads the cycle id back out of a Blake2_128Concat key.
func idFromCycleKey(key []byte) (cycle.ID, bool) {
	if len(key) != 1+crypto.Blake2_128Size+8 {
		return 0, false
	}
	return cycle.ID(binary.LittleEndian.Uint64(key[1+crypto.Blake2_128Size:])), true
}

// accountFromGeneratorKey reads the account back out of a generator key.
func accountFromGeneratorKey(key []byte) (common.AccountID, bool) {
	if len(key) < common.AccountIDSize {
		return common.AccountID{}, false
	}
	return common.AccountID(key[len(key)-common.AccountIDSize:]), true
}

// upperBound returns the smallest key greater than every key starting with
// prefix, or nil if there is none.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
