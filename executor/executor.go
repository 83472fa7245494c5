// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
	"go.uber.org/atomic"

	"github.com/ava-labs/ammvm/state"
)

// Executor runs calls concurrently while preserving the queue order of calls
// that touch the same key. A call that only reads a key may run alongside
// other readers of that key, but never alongside a call that writes it.
// At most [cores] calls run at once.
type Executor struct {
	added int
	tasks []*task
	keys  map[string]*keyHistory
	sem   chan struct{}

	outstanding sync.WaitGroup

	err atomic.Error
}

// keyHistory is the last writer of a key and the readers queued after it.
type keyHistory struct {
	writer  int
	readers []int
}

// New creates a new [Executor] that accepts up to [items] calls and runs at
// most [cores] of them at once.
func New(items, cores int) *Executor {
	if cores < 1 {
		cores = 1
	}
	return &Executor{
		tasks: make([]*task, items),
		keys:  make(map[string]*keyHistory, items*2),
		sem:   make(chan struct{}, cores),
	}
}

type task struct {
	f func() error

	l        sync.Mutex
	waiters  []*sync.WaitGroup
	executed bool
}

// Run executes [f] once every earlier call it conflicts with on [conflicts]
// has executed.
//
// Run is not safe to call concurrently.
func (e *Executor) Run(conflicts state.Keys, f func() error) {
	if e.added >= len(e.tasks) {
		e.err.CompareAndSwap(nil, ErrTooManyTasks)
		return
	}

	id := e.added
	e.added++
	t := &task{f: f}
	e.tasks[id] = t
	e.outstanding.Add(1)

	wg := &sync.WaitGroup{}
	deps := set.NewSet[int](len(conflicts))
	for k, p := range conflicts {
		h, ok := e.keys[k]
		if !ok {
			h = &keyHistory{writer: -1}
			e.keys[k] = h
		}
		if h.writer >= 0 {
			deps.Add(h.writer)
		}
		if p == state.Read {
			h.readers = append(h.readers, id)
			continue
		}
		deps.Add(h.readers...)
		h.writer = id
		h.readers = nil
	}
	for dep := range deps {
		dt := e.tasks[dep]
		dt.l.Lock()
		if !dt.executed {
			wg.Add(1)
			dt.waiters = append(dt.waiters, wg)
		}
		dt.l.Unlock()
	}

	go func() {
		// Block until our dependencies have been executed
		wg.Wait()

		// Ensure we unblock our dependents
		defer func() {
			t.l.Lock()
			for _, w := range t.waiters {
				w.Done()
			}
			t.waiters = nil
			t.executed = true
			t.l.Unlock()
			e.outstanding.Done()
		}()

		// Stop early if executor is stopped
		if e.err.Load() != nil {
			return
		}

		e.sem <- struct{}{}
		defer func() { <-e.sem }()
		if err := t.f(); err != nil {
			e.err.CompareAndSwap(nil, err)
		}
	}()
}

// Stop prevents any call that has not started from running.
func (e *Executor) Stop() {
	e.err.CompareAndSwap(nil, ErrStopped)
}

// Wait returns as soon as all enqueued [f] are executed.
//
// You should not call [Run] after [Wait] is called.
func (e *Executor) Wait() error {
	e.outstanding.Wait()
	return e.err.Load()
}
