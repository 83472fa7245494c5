// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
)

var (
	_ Subscription[struct{}] = (*SubscriptionFunc[struct{}])(nil)
	_ Subscription[struct{}] = (*filtered[struct{}])(nil)
)

// Subscription consumes a stream of events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

// SubscriptionFunc is a Subscription with nothing to close
type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// Filter wraps [sub] so that it only sees the events [keep] returns true for.
func Filter[T any](keep func(T) bool, sub Subscription[T]) Subscription[T] {
	return &filtered[T]{keep: keep, sub: sub}
}

type filtered[T any] struct {
	keep func(T) bool
	sub  Subscription[T]
}

func (f *filtered[T]) Accept(ctx context.Context, t T) error {
	if !f.keep(t) {
		return nil
	}
	return f.sub.Accept(ctx, t)
}

func (f *filtered[T]) Close() error {
	return f.sub.Close()
}

// NotifyAll delivers [e] to every subscription and joins their errors.
func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every subscription and joins their errors.
func CloseAll[T any](subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
