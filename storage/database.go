// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
)

var _ state.Immutable = (*ReadOnly)(nil)

// Database is the persistent store the engine commits to.
type Database interface {
	database.KeyValueReaderWriterDeleter
	database.Batcher
}

// ReadOnly exposes a database as [state.Immutable] for queries that run
// outside of a call.
type ReadOnly struct {
	db database.KeyValueReader
}

func NewReadOnly(db database.KeyValueReader) *ReadOnly {
	return &ReadOnly{db: db}
}

func (r *ReadOnly) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}

// [resultPrefix] + [sequence]
func ResultKey(seq uint64) []byte {
	k := make([]byte, 1+consts.Uint64Len)
	k[0] = resultPrefix
	binary.BigEndian.PutUint64(k[1:], seq)
	return k
}

func ResultSequenceKey() []byte {
	return []byte{resultSequencePrefix}
}

// GetResultSequence returns the number of results indexed so far.
func GetResultSequence(db database.KeyValueReader) (uint64, error) {
	v, err := db.Get(ResultSequenceKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, ErrInvalidRecord
	}
	return binary.BigEndian.Uint64(v), nil
}

// PutResult stores the encoded result [b] under [seq] and advances the
// sequence.
func PutResult(w database.KeyValueWriter, seq uint64, b []byte) error {
	if err := w.Put(ResultKey(seq), b); err != nil {
		return err
	}
	return w.Put(ResultSequenceKey(), binary.BigEndian.AppendUint64(nil, seq+1))
}

func GetResult(db database.KeyValueReader, seq uint64) ([]byte, error) {
	return db.Get(ResultKey(seq))
}

func GenesisKey() []byte {
	return []byte{genesisPrefix}
}

// HasGenesis reports whether the genesis allocation was already applied to
// [db].
func HasGenesis(db database.KeyValueReader) (bool, error) {
	return db.Has(GenesisKey())
}

func SetGenesis(w database.KeyValueWriter) error {
	return w.Put(GenesisKey(), nil)
}
