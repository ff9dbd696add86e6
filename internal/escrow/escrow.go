package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
)

// PalletIDSize is the length of the module identifier mixed into every
// derived account.
const PalletIDSize = 8

type PalletID [PalletIDSize]byte

// ParsePalletID accepts exactly eight ASCII bytes, e.g. "rng_dao_".
func ParsePalletID(s string) (PalletID, error) {
	if len(s) != PalletIDSize {
		return PalletID{}, fmt.Errorf("pallet id %q must be %d bytes", s, PalletIDSize)
	}
	return PalletID([]byte(s)), nil
}

func (p PalletID) String() string {
	return string(p[:])
}

var modulePrefix = [4]byte{'m', 'o', 'd', 'l'}

// Deriver maps a cycle to the account holding its funds.
type Deriver func(id cycle.ID) common.AccountID

// PalletAccount is the account owned by the module itself:
// "modl" ++ pallet id, padded with 0xff. Sub-accounts are zero padded, so the
// two never collide.
func PalletAccount(palletID PalletID) common.AccountID {
	a := header(palletID)
	for i := len(modulePrefix) + PalletIDSize; i < len(a); i++ {
		a[i] = 0xff
	}
	return a
}

// SubAccount derives the escrow account of a cycle:
// "modl" ++ pallet id ++ le(cycle id), zero padded to the account size.
// Distinct cycle ids always yield distinct accounts.
func SubAccount(palletID PalletID, id cycle.ID) common.AccountID {
	a := header(palletID)
	binary.LittleEndian.PutUint64(a[len(modulePrefix)+PalletIDSize:], uint64(id))
	return a
}

// NewDeriver binds SubAccount to a pallet id.
func NewDeriver(palletID PalletID) Deriver {
	return func(id cycle.ID) common.AccountID {
		return SubAccount(palletID, id)
	}
}

func header(palletID PalletID) common.AccountID {
	var a common.AccountID
	copy(a[:], modulePrefix[:])
	copy(a[len(modulePrefix):], palletID[:])
	return a
}
