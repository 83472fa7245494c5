// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"
)

// Action is a single callable operation of the engine.
type Action interface {
	codec.Typed

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution of an [Action] by [actor].
	//
	// Every key must be known up front so that calls with disjoint keys can
	// run in parallel and so that a call's view can be prefetched.
	StateKeys(actor codec.Address) state.Keys

	// Execute runs the action against [mu]. If it returns an error, every
	// change it made is discarded and no event it emitted is published.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		emitter Emitter,
	) (codec.Typed, error)
}

// Rules resolves the collaborators an action depends on.
type Rules interface {
	FungibleAsset(mu state.Mutable, asset codec.Address) asset.FungibleAsset
}

// Emitter records the events of a call.
type Emitter interface {
	Emit(event codec.Typed)
}

var _ Emitter = (*EventLog)(nil)

type EventLog struct {
	events []codec.Typed
}

func (l *EventLog) Emit(event codec.Typed) {
	l.events = append(l.events, event)
}

func (l *EventLog) Events() []codec.Typed {
	return l.events
}
