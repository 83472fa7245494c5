// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/config"
	"github.com/ava-labs/ammvm/event"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// VM is the exchange engine. Every call is executed in its own view of state
// and either fully committed to [storage.Database] or fully discarded.
type VM struct {
	config *config.Config
	db     storage.Database
	rules  chain.Rules

	log     logging.Logger
	tracer  trace.Tracer
	metrics *metrics

	// Guards execution and the result sequence
	l         sync.Mutex
	closed    bool
	resultSeq uint64

	// Held for writing while a batch is written to [db] so that reads
	// spanning several keys observe a single committed state
	commitLock sync.RWMutex

	clockLock sync.RWMutex
	clock     mockable.Clock

	subscriptions []event.Subscription[*chain.Result]
}

// New returns a [VM] over [db], applying [gen] if [db] has never been
// initialized.
func New(
	ctx context.Context,
	cfg *config.Config,
	db storage.Database,
	gen *genesis.Genesis,
	log logging.Logger,
	registerer prometheus.Registerer,
	tracer trace.Tracer,
	opts ...Option,
) (*VM, error) {
	metrics, err := newMetrics(cfg.MetricsNamespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	vm := &VM{
		config:  cfg,
		db:      db,
		rules:   genesis.NewDefaultRules(),
		log:     log,
		tracer:  tracer,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(vm)
	}

	vm.resultSeq, err = storage.GetResultSequence(db)
	if err != nil {
		return nil, err
	}
	if err := vm.initializeGenesis(ctx, gen); err != nil {
		return nil, err
	}
	log.Info("initialized vm",
		zap.Any("config", cfg),
		zap.Uint64("results", vm.resultSeq),
	)
	return vm, nil
}

func (vm *VM) initializeGenesis(ctx context.Context, gen *genesis.Genesis) error {
	ctx, span := vm.tracer.Start(ctx, "VM.initializeGenesis")
	defer span.End()

	exists, err := storage.HasGenesis(vm.db)
	if err != nil {
		return err
	}
	if exists {
		vm.log.Info("genesis already applied")
		return nil
	}
	ts := tstate.New(len(gen.Allocations))
	view := ts.NewView(gen.StateKeys(), nil)
	supply, err := gen.InitializeState(ctx, vm.tracer, view)
	if err != nil {
		return fmt.Errorf("failed to apply genesis: %w", err)
	}
	view.Commit()

	batch := vm.db.NewBatch()
	if _, err := ts.WriteChanges(ctx, vm.tracer, batch); err != nil {
		return err
	}
	if err := storage.SetGenesis(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	vm.log.Info("genesis state created",
		zap.Int("allocations", len(gen.Allocations)),
		zap.Uint64("supply", supply),
	)
	return nil
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}

// Timestamp returns the time, in unix seconds, deadlines are compared to.
func (vm *VM) Timestamp() int64 {
	vm.clockLock.RLock()
	defer vm.clockLock.RUnlock()

	return vm.clock.Time().Unix()
}

// SetTimestamp pins the clock to [timestamp] unix seconds.
func (vm *VM) SetTimestamp(timestamp int64) {
	vm.clockLock.Lock()
	defer vm.clockLock.Unlock()

	vm.clock.Set(time.Unix(timestamp, 0))
}

// Execute runs [action] on behalf of [actor]. The returned error is the reason
// the call was discarded, if any. The [chain.Result] is returned either way
// unless committing to disk failed.
func (vm *VM) Execute(ctx context.Context, actor codec.Address, action chain.Action) (*chain.Result, error) {
	results, err := vm.ExecuteBatch(ctx, []*Call{{Actor: actor, Action: action}})
	if err != nil {
		return nil, err
	}
	result := results[0]
	if !result.Success {
		return result, result.Err
	}
	return result, nil
}

// ExecuteBatch runs [calls] and commits their changes in one atomic write.
// Calls that fail leave no changes; an error is only returned when the batch
// could not be executed or committed at all.
func (vm *VM) ExecuteBatch(ctx context.Context, calls []*Call) ([]*chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.ExecuteBatch", oteltrace.WithAttributes(
		attribute.Int("calls", len(calls)),
	))
	defer span.End()

	switch {
	case len(calls) == 0:
		return nil, ErrEmptyBatch
	case len(calls) > vm.config.MaxBatchSize:
		return nil, fmt.Errorf("%w: calls=%d max=%d", ErrBatchTooLarge, len(calls), vm.config.MaxBatchSize)
	}
	for i, call := range calls {
		if call == nil || call.Action == nil {
			return nil, fmt.Errorf("%w: index=%d", ErrMissingAction, i)
		}
	}

	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	p := newProcessor(vm, vm.Timestamp(), calls)
	if err := p.prefetch(ctx); err != nil {
		return nil, fmt.Errorf("failed to prefetch state: %w", err)
	}
	if err := p.execute(ctx, calls); err != nil {
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}

	batch := vm.db.NewBatch()
	changes, err := p.ts.WriteChanges(ctx, vm.tracer, batch)
	if err != nil {
		return nil, err
	}
	seq := vm.resultSeq
	if vm.config.IndexResults {
		for _, result := range p.results {
			b, err := json.Marshal(result)
			if err != nil {
				return nil, err
			}
			if err := storage.PutResult(batch, seq, b); err != nil {
				return nil, err
			}
			seq++
		}
	}
	vm.commitLock.Lock()
	err = batch.Write()
	vm.commitLock.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	indexed := seq - vm.resultSeq
	vm.resultSeq = seq

	vm.metrics.observeBatch(start, changes, p.ts.OpIndex())
	vm.metrics.resultsIndexed.Add(float64(indexed))
	for _, result := range p.results {
		vm.metrics.actions.WithLabelValues(actionName(result.Action)).Inc()
		if result.Success {
			vm.metrics.callsSucceeded.Inc()
		} else {
			vm.metrics.callsFailed.Inc()
		}
		if err := event.NotifyAll(ctx, result, vm.subscriptions...); err != nil {
			vm.log.Error("subscription failed", zap.Error(err))
		}
	}
	span.SetAttributes(attribute.Int("changes", changes))
	vm.log.Debug("committed batch",
		zap.Int("calls", len(calls)),
		zap.Int("changes", changes),
		zap.Duration("t", time.Since(start)),
	)
	return p.results, nil
}

// Close stops accepting calls and closes every subscription. The database is
// owned by the caller.
func (vm *VM) Close() error {
	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil
	}
	vm.closed = true
	return event.CloseAll(vm.subscriptions...)
}
