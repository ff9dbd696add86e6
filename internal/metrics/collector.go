package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespaceRNG    = "rngdao"
	subsystemEngine = "engine"

	LabelOperation = "operation"
	LabelReason    = "reason"
	LabelOutcome   = "outcome"
	LabelBot       = "bot"
)

// Collector observes engine outcomes. Methods are only called for committed
// operations, except OperationRejected.
type Collector interface {
	CycleOpened(bounty uint64)
	HashCommitted(isBot bool)
	SecretRevealed(payout uint64)
	CycleFinalized(success bool)
	EscrowSwept(amount uint64)
	OperationRejected(operation string, reason string)
}

type NoopCollector struct{}

func (NoopCollector) CycleOpened(uint64)               {}
func (NoopCollector) HashCommitted(bool)               {}
func (NoopCollector) SecretRevealed(uint64)            {}
func (NoopCollector) CycleFinalized(bool)              {}
func (NoopCollector) EscrowSwept(uint64)               {}
func (NoopCollector) OperationRejected(string, string) {}

type EngineCollector struct {
	cyclesOpened   prometheus.Counter
	bountyEscrowed prometheus.Counter
	hashes         *prometheus.CounterVec
	reveals        prometheus.Counter
	paidOut        prometheus.Counter
	finalized      *prometheus.CounterVec
	swept          prometheus.Counter
	rejected       *prometheus.CounterVec
}

// NewEngineCollector registers the engine metrics with reg.
func NewEngineCollector(reg prometheus.Registerer) *EngineCollector {
	factory := promauto.With(reg)
	return &EngineCollector{
		cyclesOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "cycles_opened_total",
			Help:      "number of cycles opened",
		}),
		bountyEscrowed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "bounty_escrowed_total",
			Help:      "sum of bounties moved into escrow",
		}),
		hashes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "hashes_committed_total",
			Help:      "number of accepted commitments",
		}, []string{LabelBot}),
		reveals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "secrets_revealed_total",
			Help:      "number of secrets that matched their commitment",
		}),
		paidOut: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "payout_total",
			Help:      "sum of rewards and deposits paid to revealers",
		}),
		finalized: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "cycles_finalized_total",
			Help:      "number of finalized cycles by outcome",
		}, []string{LabelOutcome}),
		swept: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "escrow_swept_total",
			Help:      "sum of residual escrow funds swept to the treasury",
		}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceRNG,
			Subsystem: subsystemEngine,
			Name:      "operations_rejected_total",
			Help:      "number of operations that aborted",
		}, []string{LabelOperation, LabelReason}),
	}
}

func (c *EngineCollector) CycleOpened(bounty uint64) {
	c.cyclesOpened.Inc()
	c.bountyEscrowed.Add(float64(bounty))
}

func (c *EngineCollector) HashCommitted(isBot bool) {
	label := "false"
	if isBot {
		label = "true"
	}
	c.hashes.With(prometheus.Labels{LabelBot: label}).Inc()
}

func (c *EngineCollector) SecretRevealed(payout uint64) {
	c.reveals.Inc()
	c.paidOut.Add(float64(payout))
}

func (c *EngineCollector) CycleFinalized(success bool) {
	outcome := "failed"
	if success {
		outcome = "completed"
	}
	c.finalized.With(prometheus.Labels{LabelOutcome: outcome}).Inc()
}

func (c *EngineCollector) EscrowSwept(amount uint64) {
	c.swept.Add(float64(amount))
}

func (c *EngineCollector) OperationRejected(operation string, reason string) {
	c.rejected.With(prometheus.Labels{LabelOperation: operation, LabelReason: reason}).Inc()
}
