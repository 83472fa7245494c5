// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/tstate"
)

// Result is the outcome of a single call.
type Result struct {
	Action    uint8         `json:"action"`
	Actor     codec.Address `json:"actor"`
	Timestamp int64         `json:"timestamp"`

	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Output  codec.Typed   `json:"output,omitempty"`
	Events  []codec.Typed `json:"events,omitempty"`

	// Err is the error returned by the action, if any.
	Err error `json:"-"`
}

// ExecuteAction runs [action] against [view]. If the action fails, every
// change it made to [view] is rolled back and the failure is recorded in the
// returned [Result].
//
// The caller decides whether to commit [view].
func ExecuteAction(
	ctx context.Context,
	r Rules,
	view *tstate.TStateView,
	timestamp int64,
	actor codec.Address,
	action Action,
) *Result {
	var (
		log    EventLog
		start  = view.OpIndex()
		result = &Result{
			Action:    action.GetTypeID(),
			Actor:     actor,
			Timestamp: timestamp,
		}
	)
	output, err := action.Execute(ctx, r, view, timestamp, actor, &log)
	if err != nil {
		view.Rollback(ctx, start)
		result.Error = err.Error()
		result.Err = err
		return result
	}
	result.Success = true
	result.Output = output
	result.Events = log.Events()
	return result
}
