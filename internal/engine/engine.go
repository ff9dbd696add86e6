package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/config"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/escrow"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/ledger"
	"github.com/eigerco/rngdao/internal/metrics"
	"github.com/eigerco/rngdao/internal/store"
	"github.com/eigerco/rngdao/pkg/log"
)

const (
	opOpen     = "open"
	opCommit   = "commit"
	opReveal   = "reveal"
	opFinalize = "finalize"
	opSweep    = "sweep"
)

// Engine drives cycles through their lifecycle. Every operation runs in a
// single registry transaction together with its ledger transfers, so either
// all of its effects are committed or none are. Notifications are emitted
// only after commit.
type Engine struct {
	mu sync.Mutex

	params   config.Params
	registry *store.Registry
	ledger   ledger.Ledger
	escrow   escrow.Deriver
	sink     events.Sink
	metrics  metrics.Collector
	log      zerolog.Logger
}

type Option func(*Engine)

func WithSink(sink events.Sink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// WithEscrow overrides the escrow account derivation.
func WithEscrow(d escrow.Deriver) Option {
	return func(e *Engine) {
		e.escrow = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// New creates an engine over registry and l.
func New(params config.Params, registry *store.Registry, l ledger.Ledger, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	e := &Engine{
		params:   params,
		registry: registry,
		ledger:   l,
		escrow:   escrow.NewDeriver(params.PalletID),
		sink:     events.Discard{},
		metrics:  metrics.NoopCollector{},
		log:      log.Engine,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Params() config.Params {
	return e.params
}

// apply runs fn in a registry transaction. The caller must hold e.mu.
func (e *Engine) apply(op string, id cycle.ID, fn func(tx *store.Tx) error) error {
	err := e.registry.Update(func(tx *store.Tx) error {
		return mapStoreErr(fn(tx))
	})
	if err != nil {
		e.metrics.OperationRejected(op, rejectReason(err))
		e.log.Debug().Err(err).Str("op", op).Uint64("cycle_id", uint64(id)).Msg("operation rejected")
		return err
	}
	return nil
}

func (e *Engine) schedule(c cycle.Cycle) (cycle.Schedule, error) {
	s, err := cycle.NewSchedule(c.Started, e.params.Timing())
	if err != nil {
		return cycle.Schedule{}, fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	return s, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrCycleNotFound) {
		return ErrCycleNotFound
	}
	return err
}

// Cycle returns the committed state of a cycle.
func (e *Engine) Cycle(id cycle.ID) (cycle.Cycle, error) {
	c, err := e.registry.Cycle(id)
	return c, mapStoreErr(err)
}

// Cycles returns every cycle ordered by id.
func (e *Engine) Cycles() ([]store.CycleEntry, error) {
	return e.registry.Cycles()
}

// Generators returns the commitments of a cycle that have not been revealed
// yet.
func (e *Engine) Generators(id cycle.ID) (gs []store.GeneratorEntry, err error) {
	err = e.registry.View(func(tx *store.Tx) error {
		if _, err := tx.GetCycle(id); err != nil {
			return err
		}
		gs, err = tx.Generators(id)
		return err
	})
	return gs, mapStoreErr(err)
}

// RandomNumber returns the result of a successfully completed cycle.
func (e *Engine) RandomNumber(id cycle.ID) (uint64, error) {
	c, err := e.Cycle(id)
	if err != nil {
		return 0, err
	}
	if c.Status != cycle.CompletedWithSuccess {
		return 0, ErrRandomNumberNotYetGenerated
	}
	return c.RandomNumber, nil
}

// Schedule returns the phase boundaries of a cycle.
func (e *Engine) Schedule(id cycle.ID) (cycle.Schedule, error) {
	c, err := e.Cycle(id)
	if err != nil {
		return cycle.Schedule{}, err
	}
	return e.schedule(c)
}

func (e *Engine) EscrowAccount(id cycle.ID) common.AccountID {
	return e.escrow(id)
}

// Balance reads the committed ledger balance of an account.
func (e *Engine) Balance(who common.AccountID) (b common.Balance, err error) {
	err = e.registry.View(func(tx *store.Tx) error {
		b, err = e.ledger.Balance(tx.KV(), who)
		return err
	})
	return b, err
}
