package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEngineCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewEngineCollector(reg)

	c.CycleOpened(200)
	c.CycleOpened(150)
	c.HashCommitted(false)
	c.HashCommitted(true)
	c.HashCommitted(false)
	c.SecretRevealed(350)
	c.CycleFinalized(true)
	c.CycleFinalized(false)
	c.EscrowSwept(50)
	c.OperationRejected("commit", "bots not allowed yet")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.cyclesOpened))
	assert.Equal(t, float64(350), testutil.ToFloat64(c.bountyEscrowed))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.hashes.WithLabelValues("false")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.hashes.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.reveals))
	assert.Equal(t, float64(350), testutil.ToFloat64(c.paidOut))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.finalized.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.finalized.WithLabelValues("failed")))
	assert.Equal(t, float64(50), testutil.ToFloat64(c.swept))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.rejected.WithLabelValues("commit", "bots not allowed yet")))

	n, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Positive(t, n)
}

func TestNoopCollector(t *testing.T) {
	var c Collector = NoopCollector{}
	c.CycleOpened(1)
	c.OperationRejected("open", "x")
}
