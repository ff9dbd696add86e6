package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/eigerco/rngdao/internal/crypto"
)

const AccountIDSize = 32

// AccountID identifies a ledger account.
type AccountID [AccountIDSize]byte

// Balance is an amount of the ledger's native unit.
type Balance uint64

func (a AccountID) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAccountID parses a 32 byte hex account, with or without 0x prefix.
func ParseAccountID(s string) (AccountID, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return AccountID{}, fmt.Errorf("decode account: %w", err)
	}
	if len(b) != AccountIDSize {
		return AccountID{}, fmt.Errorf("decode account: expected %d bytes, got %d", AccountIDSize, len(b))
	}
	return AccountID(b), nil
}

// DevAccount derives a well known development account from a human alias
// such as "alice".
func DevAccount(alias string) AccountID {
	return AccountID(crypto.HashData([]byte("//" + strings.ToLower(alias))))
}

// ResolveAccount accepts either a hex account or a development alias.
func ResolveAccount(s string) (AccountID, error) {
	if s == "" {
		return AccountID{}, fmt.Errorf("empty account")
	}
	trimmed := strings.TrimPrefix(s, "0x")
	if len(trimmed) == 2*AccountIDSize {
		if a, err := ParseAccountID(trimmed); err == nil {
			return a, nil
		}
	}
	if strings.HasPrefix(s, "0x") {
		return AccountID{}, fmt.Errorf("invalid hex account %q", s)
	}
	return DevAccount(s), nil
}
