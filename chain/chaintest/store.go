// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/tstate"
)

var (
	_ state.Mutable                  = (*InMemoryStore)(nil)
	_ database.KeyValueReader        = (*InMemoryStore)(nil)
	_ database.KeyValueWriterDeleter = (*InMemoryStore)(nil)
)

// InMemoryStore is a state store with no scope restrictions.
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := i.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	if !keys.Fits(key, value) {
		return tstate.ErrInvalidKeyValue
	}
	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(i.Storage, string(key))
	return nil
}

func (i *InMemoryStore) Has(key []byte) (bool, error) {
	_, ok := i.Storage[string(key)]
	return ok, nil
}

func (i *InMemoryStore) Get(key []byte) ([]byte, error) {
	return i.GetValue(context.Background(), key)
}

func (i *InMemoryStore) Put(key []byte, value []byte) error {
	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Delete(key []byte) error {
	delete(i.Storage, string(key))
	return nil
}

// Snapshot returns the stored values of [scope].
func (i *InMemoryStore) Snapshot(scope state.Keys) map[string][]byte {
	values := make(map[string][]byte, len(scope))
	for k := range scope {
		if v, ok := i.Storage[k]; ok {
			values[k] = v
		}
	}
	return values
}
