// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/event"
)

type Option func(*VM)

// WithRules replaces the collaborators actions are resolved against.
func WithRules(r chain.Rules) Option {
	return func(vm *VM) {
		vm.rules = r
	}
}

// WithResultSubscriptions delivers every committed result to [subs].
func WithResultSubscriptions(subs ...event.Subscription[*chain.Result]) Option {
	return func(vm *VM) {
		vm.subscriptions = append(vm.subscriptions, subs...)
	}
}

// WithTimestamp pins the clock used to check deadlines. Used in tests.
func WithTimestamp(timestamp int64) Option {
	return func(vm *VM) {
		vm.SetTimestamp(timestamp)
	}
}
