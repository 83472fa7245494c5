// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/tstate"
)

// ActionTest is a single table-driven test of an action.
//
// The action runs in a view scoped to its own [chain.Action.StateKeys], so
// touching an undeclared key fails the test. Changes reach [State] only if
// the action succeeds.
type ActionTest struct {
	Name string

	Action chain.Action

	// Rules defaults to [genesis.NewDefaultRules] when nil
	Rules     chain.Rules
	State     *InMemoryStore
	Timestamp int64
	Actor     codec.Address

	ExpectedOutputs codec.Typed
	ExpectedErr     error
	// ExpectedEvents is only checked when non-nil
	ExpectedEvents []codec.Typed

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure that the expected outputs are returned.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		rules := test.Rules
		if rules == nil {
			rules = genesis.NewDefaultRules()
		}
		scope := test.Action.StateKeys(test.Actor)
		ts := tstate.New(len(scope))
		view := ts.NewView(scope, test.State.Snapshot(scope))

		result := chain.ExecuteAction(ctx, rules, view, test.Timestamp, test.Actor, test.Action)
		require.ErrorIs(result.Err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, result.Output)
		if test.ExpectedEvents != nil {
			require.Equal(test.ExpectedEvents, result.Events)
		}
		if result.Success {
			view.Commit()
			_, err := ts.WriteChanges(ctx, trace.Noop, test.State)
			require.NoError(err)
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

// Execute runs [action] against [store] the way [ActionTest.Run] does and
// returns its result. It is used to set up state for tests.
func Execute(
	ctx context.Context,
	rules chain.Rules,
	store *InMemoryStore,
	timestamp int64,
	actor codec.Address,
	action chain.Action,
) (*chain.Result, error) {
	if rules == nil {
		rules = genesis.NewDefaultRules()
	}
	scope := action.StateKeys(actor)
	ts := tstate.New(len(scope))
	view := ts.NewView(scope, store.Snapshot(scope))
	result := chain.ExecuteAction(ctx, rules, view, timestamp, actor, action)
	if !result.Success {
		return result, result.Err
	}
	view.Commit()
	_, err := ts.WriteChanges(ctx, trace.Noop, store)
	return result, err
}
