// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/neilotoole/errgroup"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/executor"
	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Call is a single action invoked by [Actor].
type Call struct {
	Actor  codec.Address
	Action chain.Action
}

type fetchData struct {
	v      []byte
	exists bool
}

// processor executes one batch of calls on top of a shared [tstate.TState].
type processor struct {
	vm        *VM
	timestamp int64

	stateKeys []state.Keys

	cacheLock sync.RWMutex
	cache     map[string]*fetchData

	ts      *tstate.TState
	results []*chain.Result
}

func newProcessor(vm *VM, timestamp int64, calls []*Call) *processor {
	stateKeys := make([]state.Keys, len(calls))
	changes := 0
	for i, call := range calls {
		stateKeys[i] = call.Action.StateKeys(call.Actor)
		changes += len(stateKeys[i])
	}
	return &processor{
		vm:        vm,
		timestamp: timestamp,
		stateKeys: stateKeys,
		cache:     make(map[string]*fetchData, changes),
		ts:        tstate.New(changes),
		results:   make([]*chain.Result, len(calls)),
	}
}

// prefetch reads every key touched by the batch from disk, bounded by the
// configured parallelism.
func (p *processor) prefetch(ctx context.Context) error {
	ctx, span := p.vm.tracer.Start(ctx, "processor.prefetch")
	defer span.End()

	unique := make(state.Keys)
	for _, stateKeys := range p.stateKeys {
		for k := range stateKeys {
			unique[k] = state.Read
		}
	}
	span.SetAttributes(attribute.Int("keys", len(unique)))

	g, gctx := errgroup.WithContextN(ctx, p.vm.config.Parallelism, len(unique))
	for k := range unique {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := p.vm.db.Get([]byte(k))
			switch {
			case errors.Is(err, database.ErrNotFound):
				p.store(k, &fetchData{})
				return nil
			case err != nil:
				return err
			}
			// Values written through a view are always verified
			if _, ok := keys.ValueChunks(v); !ok {
				return fmt.Errorf("%w: key=%x", ErrInvalidKeyValue, k)
			}
			p.store(k, &fetchData{v: v, exists: true})
			return nil
		})
	}
	return g.Wait()
}

func (p *processor) store(k string, d *fetchData) {
	p.cacheLock.Lock()
	defer p.cacheLock.Unlock()

	p.cache[k] = d
}

func (p *processor) storage(stateKeys state.Keys) map[string][]byte {
	p.cacheLock.RLock()
	defer p.cacheLock.RUnlock()

	storage := make(map[string][]byte, len(stateKeys))
	for k := range stateKeys {
		if d, ok := p.cache[k]; ok && d.exists {
			storage[k] = d.v
		}
	}
	return storage
}

// execute runs every call. Calls that share a key run in the order they were
// submitted, calls with disjoint keys run in parallel.
func (p *processor) execute(ctx context.Context, calls []*Call) error {
	ctx, span := p.vm.tracer.Start(ctx, "processor.execute", oteltrace.WithAttributes(
		attribute.Int("calls", len(calls)),
	))
	defer span.End()

	e := executor.New(len(calls), p.vm.config.Parallelism)
	for i, call := range calls {
		i, call := i, call
		stateKeys := p.stateKeys[i]
		e.Run(stateKeys, func() error {
			// It is critical the scope is set before each call is processed
			tsv := p.ts.NewView(stateKeys, p.storage(stateKeys))
			result := chain.ExecuteAction(ctx, p.vm.rules, tsv, p.timestamp, call.Actor, call.Action)
			p.results[i] = result
			if !result.Success {
				p.vm.log.Debug("call failed",
					zap.Int("index", i),
					zap.String("action", actionName(call.Action.GetTypeID())),
					zap.Stringer("actor", call.Actor),
					zap.Error(result.Err),
				)
				return nil
			}
			tsv.Commit()
			return nil
		})
	}
	return e.Wait()
}
