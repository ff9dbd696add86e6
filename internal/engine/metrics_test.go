package engine

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/metrics"
)

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, WithMetrics(metrics.NewEngineCollector(reg)))

	id := f.open(t, 200, 1)
	err := f.engine.Commit(dave, id, crypto.CommitSecret(807), true, 2)
	require.ErrorIs(t, err, ErrBotsNotAllowedYet)
	f.commit(t, dave, id, 807, true, 5)
	require.NoError(t, f.engine.Reveal(dave, id, 807, true, 6))

	expected := `
# HELP rngdao_engine_cycles_opened_total number of cycles opened
# TYPE rngdao_engine_cycles_opened_total counter
rngdao_engine_cycles_opened_total 1
# HELP rngdao_engine_hashes_committed_total number of accepted commitments
# TYPE rngdao_engine_hashes_committed_total counter
rngdao_engine_hashes_committed_total{bot="true"} 1
# HELP rngdao_engine_operations_rejected_total number of operations that aborted
# TYPE rngdao_engine_operations_rejected_total counter
rngdao_engine_operations_rejected_total{operation="commit",reason="bots not allowed yet"} 1
# HELP rngdao_engine_payout_total sum of rewards and deposits paid to revealers
# TYPE rngdao_engine_payout_total counter
rngdao_engine_payout_total 400
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"rngdao_engine_cycles_opened_total",
		"rngdao_engine_hashes_committed_total",
		"rngdao_engine_operations_rejected_total",
		"rngdao_engine_payout_total",
	)
	assert.NoError(t, err)
}
