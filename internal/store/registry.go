package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/pkg/db"
	"github.com/eigerco/rngdao/pkg/db/pebble"
	"github.com/eigerco/rngdao/pkg/log"
	"github.com/eigerco/rngdao/pkg/serialization/codec"
)

var (
	ErrCycleNotFound     = errors.New("cycle not found")
	ErrGeneratorNotFound = errors.New("generator not found")
	ErrCounterOverflow   = errors.New("cycle counter overflow")
	ErrRegistryClosed    = errors.New("registry is closed")
)

// Registry owns cycle and generator records. It enforces existence and
// uniqueness only, business rules live in the engine.
type Registry struct {
	db     db.KVStore
	codec  codec.Codec
	closed atomic.Bool
}

// NewRegistry creates a registry on top of a KVStore
func NewRegistry(kv db.KVStore) *Registry {
	return &Registry{db: kv, codec: codec.NewSCALECodec()}
}

// Update runs fn inside a transaction. The transaction is committed only if
// fn returns nil, otherwise none of its writes become visible.
func (r *Registry) Update(fn func(tx *Tx) error) error {
	if r.closed.Load() {
		return ErrRegistryClosed
	}

	batch := r.db.NewBatch()
	defer batch.Close() //nolint:errcheck

	if err := fn(&Tx{batch: batch, codec: r.codec}); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf(ErrFailedBatchCommit, err)
	}
	return nil
}

// View runs fn against a transaction that is always discarded.
func (r *Registry) View(fn func(tx *Tx) error) error {
	if r.closed.Load() {
		return ErrRegistryClosed
	}

	batch := r.db.NewBatch()
	defer batch.Close() //nolint:errcheck

	return fn(&Tx{batch: batch, codec: r.codec})
}

// Cycle reads a committed cycle.
func (r *Registry) Cycle(id cycle.ID) (c cycle.Cycle, err error) {
	err = r.View(func(tx *Tx) error {
		c, err = tx.GetCycle(id)
		return err
	})
	return c, err
}

// CycleCount returns the id the next opened cycle will get.
func (r *Registry) CycleCount() (n cycle.ID, err error) {
	err = r.View(func(tx *Tx) error {
		n, err = tx.CycleCount()
		return err
	})
	return n, err
}

// Generators lists the outstanding generator records of a cycle.
func (r *Registry) Generators(id cycle.ID) (gs []GeneratorEntry, err error) {
	err = r.View(func(tx *Tx) error {
		gs, err = tx.Generators(id)
		return err
	})
	return gs, err
}

// Cycles lists every cycle ordered by id.
func (r *Registry) Cycles() (cs []CycleEntry, err error) {
	err = r.View(func(tx *Tx) error {
		cs, err = tx.Cycles()
		return err
	})
	return cs, err
}

// Close closes the registry and the underlying store
func (r *Registry) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.db.Close()
}

type CycleEntry struct {
	ID    cycle.ID    `json:"id"`
	Cycle cycle.Cycle `json:"cycle"`
}

type GeneratorEntry struct {
	Account   common.AccountID `json:"account"`
	Generator cycle.Generator  `json:"generator"`
}

// Tx is a transactional view of the registry.
type Tx struct {
	batch db.Batch
	codec codec.Codec
}

// KV exposes the underlying batch so collaborators such as the ledger can
// join the same transaction.
func (tx *Tx) KV() db.ReadWriter {
	return tx.batch
}

// CycleCount returns the next identifier without allocating it.
func (tx *Tx) CycleCount() (cycle.ID, error) {
	b, err := tx.batch.Get(counterKey())
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get cycle count: %w", err)
	}
	var n uint64
	if err := tx.codec.Unmarshal(b, &n); err != nil {
		return 0, fmt.Errorf("decode cycle count: %w", err)
	}
	return cycle.ID(n), nil
}

// AllocateID returns the current counter value and advances the counter.
func (tx *Tx) AllocateID() (cycle.ID, error) {
	id, err := tx.CycleCount()
	if err != nil {
		return 0, err
	}
	if id == math.MaxUint64 {
		return 0, ErrCounterOverflow
	}
	b, err := tx.codec.Marshal(uint64(id + 1))
	if err != nil {
		return 0, fmt.Errorf("encode cycle count: %w", err)
	}
	if err := tx.batch.Put(counterKey(), b); err != nil {
		return 0, fmt.Errorf("store cycle count: %w", err)
	}
	return id, nil
}

func (tx *Tx) PutCycle(id cycle.ID, c cycle.Cycle) error {
	b, err := tx.codec.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cycle: %w", err)
	}
	if err := tx.batch.Put(cycleKey(id), b); err != nil {
		return fmt.Errorf("store cycle: %w", err)
	}
	return nil
}

func (tx *Tx) GetCycle(id cycle.ID) (cycle.Cycle, error) {
	b, err := tx.batch.Get(cycleKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return cycle.Cycle{}, ErrCycleNotFound
		}
		return cycle.Cycle{}, fmt.Errorf("get cycle: %w", err)
	}
	var c cycle.Cycle
	if err := tx.codec.Unmarshal(b, &c); err != nil {
		return cycle.Cycle{}, fmt.Errorf("decode cycle: %w", err)
	}
	return c, nil
}

// MutateCycle loads a cycle, applies fn and stores the result. If fn fails
// nothing is written.
func (tx *Tx) MutateCycle(id cycle.ID, fn func(c *cycle.Cycle) error) error {
	c, err := tx.GetCycle(id)
	if err != nil {
		return err
	}
	if err := fn(&c); err != nil {
		return err
	}
	return tx.PutCycle(id, c)
}

func (tx *Tx) PutGenerator(id cycle.ID, who common.AccountID, g cycle.Generator) error {
	b, err := tx.codec.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode generator: %w", err)
	}
	if err := tx.batch.Put(generatorKey(id, who), b); err != nil {
		return fmt.Errorf("store generator: %w", err)
	}
	return nil
}

func (tx *Tx) GetGenerator(id cycle.ID, who common.AccountID) (cycle.Generator, error) {
	b, err := tx.batch.Get(generatorKey(id, who))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return cycle.Generator{}, ErrGeneratorNotFound
		}
		return cycle.Generator{}, fmt.Errorf("get generator: %w", err)
	}
	var g cycle.Generator
	if err := tx.codec.Unmarshal(b, &g); err != nil {
		return cycle.Generator{}, fmt.Errorf("decode generator: %w", err)
	}
	return g, nil
}

func (tx *Tx) RemoveGenerator(id cycle.ID, who common.AccountID) error {
	if err := tx.batch.Delete(generatorKey(id, who)); err != nil {
		return fmt.Errorf("delete generator: %w", err)
	}
	return nil
}

// Generators lists the generator records still held for a cycle.
func (tx *Tx) Generators(id cycle.ID) ([]GeneratorEntry, error) {
	prefix := generatorPrefix(id)
	iter, err := tx.batch.NewIterator(prefix, upperBound(prefix))
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	var entries []GeneratorEntry
	for iter.Next() {
		who, ok := accountFromGeneratorKey(iter.Key())
		if !ok {
			log.Store.Warn().Hex("key", iter.Key()).Msg("skipping malformed generator key")
			continue
		}
		b, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("read generator: %w", err)
		}
		var g cycle.Generator
		if err := tx.codec.Unmarshal(b, &g); err != nil {
			log.Store.Warn().Err(err).Stringer("account", who).Msg("skipping undecodable generator")
			continue
		}
		entries = append(entries, GeneratorEntry{Account: who, Generator: g})
	}
	return entries, nil
}

// Cycles lists every stored cycle.
func (tx *Tx) Cycles() ([]CycleEntry, error) {
	iter, err := tx.batch.NewIterator([]byte{prefixCycle}, []byte{prefixCycle + 1})
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	var entries []CycleEntry
	for iter.Next() {
		id, ok := idFromCycleKey(iter.Key())
		if !ok {
			log.Store.Warn().Hex("key", iter.Key()).Msg("skipping malformed cycle key")
			continue
		}
		b, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("read cycle: %w", err)
		}
		var c cycle.Cycle
		if err := tx.codec.Unmarshal(b, &c); err != nil {
			log.Store.Warn().Err(err).Uint64("cycle_id", uint64(id)).Msg("skipping undecodable cycle")
			continue
		}
		entries = append(entries, CycleEntry{ID: id, Cycle: c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}
