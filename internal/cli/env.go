package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eigerco/rngdao/internal/config"
	"github.com/eigerco/rngdao/internal/engine"
	"github.com/eigerco/rngdao/internal/events"
	"github.com/eigerco/rngdao/internal/ledger"
	"github.com/eigerco/rngdao/internal/metrics"
	"github.com/eigerco/rngdao/internal/store"
	"github.com/eigerco/rngdao/pkg/db/pebble"
	"github.com/eigerco/rngdao/pkg/log"
)

// environment is everything a command needs to talk to the local store.
type environment struct {
	params   config.Params
	registry *store.Registry
	balances *ledger.Balances
	engine   *engine.Engine

	metrics     *prometheus.Registry
	metricsFile string
}

func loadParams(opts *RootOptions) (config.Params, error) {
	v := config.NewViper()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return config.Params{}, fmt.Errorf("read config: %w", err)
		}
	}
	return config.Load(v)
}

func openEnvironment(opts *RootOptions) (*environment, error) {
	params, err := loadParams(opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.DataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	kv, err := pebble.Open(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	env := &environment{
		params:      params,
		registry:    store.NewRegistry(kv),
		balances:    ledger.NewBalances(params.ExistentialDeposit),
		metrics:     prometheus.NewRegistry(),
		metricsFile: opts.MetricsFile,
	}
	env.engine, err = engine.New(params, env.registry, env.balances,
		engine.WithSink(events.NewLogSink(log.CLI)),
		engine.WithMetrics(metrics.NewEngineCollector(env.metrics)),
	)
	if err != nil {
		return nil, multierror.Append(err, env.registry.Close()).ErrorOrNil()
	}

	log.CLI.Debug().Str("data_dir", opts.DataDir).Msg("store opened")
	return env, nil
}

// Close writes out metrics, if requested, and closes the store.
func (env *environment) Close() error {
	var result *multierror.Error
	if env.metricsFile != "" {
		if err := prometheus.WriteToTextfile(env.metricsFile, env.metrics); err != nil {
			result = multierror.Append(result, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := env.registry.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close store: %w", err))
	}
	return result.ErrorOrNil()
}

// withEnvironment opens the environment, runs fn and closes it again,
// reporting errors of both.
func withEnvironment(opts *RootOptions, fn func(env *environment) error) (err error) {
	env, err := openEnvironment(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := env.Close(); closeErr != nil {
			if err == nil {
				err = closeErr
				return
			}
			err = multierror.Append(err, closeErr)
		}
	}()
	return fn(env)
}
