package ledger

import (
	"errors"
	"fmt"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/safemath"
	"github.com/eigerco/rngdao/pkg/db"
	"github.com/eigerco/rngdao/pkg/db/pebble"
	"github.com/eigerco/rngdao/pkg/log"
	"github.com/eigerco/rngdao/pkg/serialization/codec"
)

var (
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrKeepAlive           = errors.New("ledger: transfer would kill account")
	ErrExistentialDeposit  = errors.New("ledger: value below existential deposit")
	ErrBalanceOverflow     = errors.New("ledger: balance overflow")
)

// Ledger moves value between accounts. Every call takes the transaction it
// should write into, so a transfer is only applied if the caller commits.
type Ledger interface {
	Transfer(rw db.ReadWriter, from, to common.AccountID, amount common.Balance, keepAlive bool) error
	Balance(r db.Reader, who common.AccountID) (common.Balance, error)
}

// prefixBalance keeps ledger keys apart from the registry prefixes.
const prefixBalance byte = 0x10

// Balances is a KV backed ledger with an existential deposit: accounts
// holding less than it do not exist and their dust is dropped.
type Balances struct {
	existentialDeposit common.Balance
	codec              codec.Codec
}

func NewBalances(existentialDeposit common.Balance) *Balances {
	return &Balances{
		existentialDeposit: existentialDeposit,
		codec:              codec.NewSCALECodec(),
	}
}

func (b *Balances) ExistentialDeposit() common.Balance {
	return b.existentialDeposit
}

func (b *Balances) Balance(r db.Reader, who common.AccountID) (common.Balance, error) {
	v, err := r.Get(balanceKey(who))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	var amount uint64
	if err := b.codec.Unmarshal(v, &amount); err != nil {
		return 0, fmt.Errorf("decode balance: %w", err)
	}
	return common.Balance(amount), nil
}

// Transfer moves amount from one account to another. With keepAlive the
// sender must stay at or above the existential deposit, without it a sender
// left below the deposit is reaped.
func (b *Balances) Transfer(rw db.ReadWriter, from, to common.AccountID, amount common.Balance, keepAlive bool) error {
	if amount == 0 || from == to {
		return nil
	}

	fromBalance, err := b.Balance(rw, from)
	if err != nil {
		return err
	}
	remaining, ok := safemath.Sub64(uint64(fromBalance), uint64(amount))
	if !ok {
		return ErrInsufficientBalance
	}
	if remaining < uint64(b.existentialDeposit) && remaining > 0 {
		if keepAlive {
			return ErrKeepAlive
		}
		log.Ledger.Debug().Stringer("account", from).Uint64("dust", remaining).Msg("reaping account")
		remaining = 0
	}
	if keepAlive && remaining == 0 && b.existentialDeposit > 0 {
		return ErrKeepAlive
	}

	toBalance, err := b.Balance(rw, to)
	if err != nil {
		return err
	}
	credited, ok := safemath.Add64(uint64(toBalance), uint64(amount))
	if !ok {
		return ErrBalanceOverflow
	}
	if credited < uint64(b.existentialDeposit) {
		return ErrExistentialDeposit
	}

	if err := b.put(rw, from, common.Balance(remaining)); err != nil {
		return err
	}
	if err := b.put(rw, to, common.Balance(credited)); err != nil {
		return err
	}

	log.Ledger.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Uint64("amount", uint64(amount)).
		Bool("keep_alive", keepAlive).
		Msg("transfer")
	return nil
}

// Mint creates amount out of thin air. It is a host primitive used for
// genesis balances and development, the engine never calls it.
func (b *Balances) Mint(rw db.ReadWriter, who common.AccountID, amount common.Balance) error {
	balance, err := b.Balance(rw, who)
	if err != nil {
		return err
	}
	minted, ok := safemath.Add64(uint64(balance), uint64(amount))
	if !ok {
		return ErrBalanceOverflow
	}
	if minted < uint64(b.existentialDeposit) {
		return ErrExistentialDeposit
	}
	return b.put(rw, who, common.Balance(minted))
}

func (b *Balances) put(w db.Writer, who common.AccountID, amount common.Balance) error {
	if amount == 0 {
		if err := w.Delete(balanceKey(who)); err != nil {
			return fmt.Errorf("delete balance: %w", err)
		}
		return nil
	}
	v, err := b.codec.Marshal(uint64(amount))
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}
	if err := w.Put(balanceKey(who), v); err != nil {
		return fmt.Errorf("store balance: %w", err)
	}
	return nil
}

func balanceKey(who common.AccountID) []byte {
	hashed := crypto.Blake2_128Concat(who[:])
	key := make([]byte, 0, 1+len(hashed))
	key = append(key, prefixBalance)
	return append(key, hashed...)
}
