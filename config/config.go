// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/trace"
)

const (
	defaultMaxBatchSize     = 1_024
	defaultIndexResults     = true
	defaultMetricsNamespace = consts.Name
	defaultTraceSampleRate  = 1.0
)

// Config tunes a [vm.VM] and the processes that host it.
type Config struct {
	// Execution
	Parallelism  int  `json:"parallelism"`
	MaxBatchSize int  `json:"maxBatchSize"`
	IndexResults bool `json:"indexResults"`

	// Observability
	LogLevel         logging.Level `json:"logLevel"`
	MetricsNamespace string        `json:"metricsNamespace"`
	TraceEnabled     bool          `json:"traceEnabled"`
	TraceSampleRate  float64       `json:"traceSampleRate"`
	TraceEndpoint    string        `json:"traceEndpoint"`
}

// New parses [b] on top of the defaults. An empty [b] yields the defaults.
func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if c.Parallelism <= 0 {
		return nil, fmt.Errorf("%w: parallelism=%d", ErrInvalidConfig, c.Parallelism)
	}
	if c.MaxBatchSize <= 0 {
		return nil, fmt.Errorf("%w: maxBatchSize=%d", ErrInvalidConfig, c.MaxBatchSize)
	}
	return c, nil
}

func (c *Config) setDefault() {
	c.Parallelism = runtime.NumCPU()
	c.MaxBatchSize = defaultMaxBatchSize
	c.IndexResults = defaultIndexResults
	c.LogLevel = logging.Info
	c.MetricsNamespace = defaultMetricsNamespace
	c.TraceSampleRate = defaultTraceSampleRate
}

func (c *Config) GetLogLevel() logging.Level { return c.LogLevel }
func (c *Config) GetParallelism() int        { return c.Parallelism }
func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:    c.TraceEnabled,
		SampleRate: c.TraceSampleRate,
		Endpoint:   c.TraceEndpoint,
		Service:    consts.Name,
		Version:    consts.Version.String(),
	}
}
