// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"
)

var (
	testVal = []byte("value")

	key1    = keys.New(1, 1, []byte("key1"))
	key1str = string(key1)
	key2    = keys.New(1, 2, []byte("key2"))
	key2str = string(key2)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, ErrKeyNotSpecified)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, key1, testVal), ErrKeyNotSpecified)
	require.ErrorIs(tsv.Remove(ctx, key1), ErrKeyNotSpecified)
}

func TestPermissions(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{key1str: state.Read, key2str: state.Write},
		map[string][]byte{key1str: testVal},
	)
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, v)
	require.ErrorIs(tsv.Insert(ctx, key1, testVal), ErrPermissionDenied)

	// key2 does not exist so writing it requires allocation
	require.ErrorIs(tsv.Insert(ctx, key2, testVal), ErrPermissionDenied)
}

func TestGetValueNotFound(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	_, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertInvalidValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, key1, make([]byte, 65)), ErrInvalidKeyValue)
}

func TestDisableAllocation(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	tsv.DisableAllocation()
	require.ErrorIs(tsv.Insert(ctx, key1, testVal), ErrAllocationDisabled)
	tsv.EnableAllocation()
	require.NoError(tsv.Insert(ctx, key1, testVal))
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.All},
		map[string][]byte{key1str: testVal},
	)
	require.NoError(tsv.Insert(ctx, key1, []byte("new")))
	require.NoError(tsv.Insert(ctx, key2, testVal))
	require.NoError(tsv.Remove(ctx, key1))
	require.Equal(3, tsv.OpIndex())

	_, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	tsv.Rollback(ctx, 1)
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("new"), v)
	_, err = tsv.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)

	tsv.Rollback(ctx, 0)
	v, err = tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, v)
	require.Zero(tsv.PendingChanges())
}

func TestCommitVisibility(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	scope := state.Keys{key1str: state.All}

	first := ts.NewView(scope, map[string][]byte{})
	require.NoError(first.Insert(ctx, key1, testVal))

	second := ts.NewView(scope, map[string][]byte{})
	_, err := second.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	first.Commit()
	v, err := second.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, v)
	require.Equal(1, ts.OpIndex())
	require.Equal(1, ts.PendingChanges())
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	db := memdb.New()
	require.NoError(db.Put(key2, testVal))

	ts := New(10)
	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.All},
		map[string][]byte{key2str: testVal},
	)
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()

	batch := db.NewBatch()
	n, err := ts.WriteChanges(ctx, trace.Noop, batch)
	require.NoError(err)
	require.Equal(2, n)
	require.NoError(batch.Write())

	v, err := db.Get(key1)
	require.NoError(err)
	require.Equal(testVal, v)
	has, err := db.Has(key2)
	require.NoError(err)
	require.False(has)
}
