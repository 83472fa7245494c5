// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/keys"
)

type memState struct {
	db *memdb.Database
}

func (m *memState) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return m.db.Get(key)
}

func (m *memState) Insert(_ context.Context, key []byte, value []byte) error {
	if !keys.Fits(key, value) {
		return ErrInvalidRecord
	}
	return m.db.Put(key, value)
}

func (m *memState) Remove(_ context.Context, key []byte) error {
	return m.db.Delete(key)
}

func newState() *memState {
	return &memState{db: memdb.New()}
}

func TestBalances(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newState()
	a := codectest.NewRandomAddress()
	b := codectest.NewRandomAddress()

	bal, err := GetBalance(ctx, mu, a)
	require.NoError(err)
	require.Zero(bal)

	bal, err = AddBalance(ctx, mu, a, 100)
	require.NoError(err)
	require.Equal(uint64(100), bal)

	_, err = SubBalance(ctx, mu, a, 101)
	require.ErrorIs(err, ErrInvalidBalance)

	_, err = AddBalance(ctx, mu, a, consts.MaxUint64)
	require.ErrorIs(err, ErrInvalidBalance)

	require.NoError(TransferBalance(ctx, mu, a, b, 40))
	bal, err = GetBalance(ctx, mu, a)
	require.NoError(err)
	require.Equal(uint64(60), bal)
	bal, err = GetBalance(ctx, mu, b)
	require.NoError(err)
	require.Equal(uint64(40), bal)
}

func TestAssetInfo(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newState()

	owner := codectest.NewRandomAddress()
	info := &AssetInfo{
		Name:        []byte("Wrapped Ether"),
		Symbol:      []byte("WETH"),
		Decimals:    18,
		Metadata:    []byte("bridged"),
		TotalSupply: 1_000,
		Owner:       owner,
	}
	asset := AssetAddress(info.Name, info.Symbol, info.Metadata)
	require.Equal(consts.AssetAddressID, asset.TypeID())

	_, exists, err := GetAssetInfo(ctx, mu, asset)
	require.NoError(err)
	require.False(exists)

	require.NoError(SetAssetInfo(ctx, mu, asset, info))
	got, exists, err := GetAssetInfo(ctx, mu, asset)
	require.NoError(err)
	require.True(exists)
	require.Equal(info, got)

	// largest allowed metadata still fits the reserved chunks
	info.Name = make([]byte, MaxAssetNameSize)
	info.Symbol = make([]byte, MaxAssetSymbolSize)
	info.Metadata = make([]byte, MaxAssetMetadataSize)
	require.NoError(SetAssetInfo(ctx, mu, asset, info))
}

func TestAssetBalancesAndAllowances(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newState()
	asset := AssetAddress([]byte("a"), []byte("A"), []byte("m"))
	owner := codectest.NewRandomAddress()
	spender := codectest.NewRandomAddress()

	require.NoError(SetAssetBalance(ctx, mu, asset, owner, 5))
	require.NoError(SetAllowance(ctx, mu, asset, owner, spender, 3))

	bal, err := GetAssetBalance(ctx, mu, asset, owner)
	require.NoError(err)
	require.Equal(uint64(5), bal)
	allowance, err := GetAllowance(ctx, mu, asset, owner, spender)
	require.NoError(err)
	require.Equal(uint64(3), allowance)
	allowance, err = GetAllowance(ctx, mu, asset, spender, owner)
	require.NoError(err)
	require.Zero(allowance)
}

func TestExchangeRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newState()
	asset := AssetAddress([]byte("a"), []byte("A"), []byte("m"))
	exchange := ExchangeAddress(asset)
	require.Equal(asset, ExchangeAsset(exchange))
	require.Equal(consts.ExchangeAddressID, exchange.TypeID())

	_, exists, err := GetExchange(ctx, mu, exchange)
	require.NoError(err)
	require.False(exists)

	e := &Exchange{Asset: asset, ReserveAsset: 10, TotalShares: 1000, Initialized: true}
	require.NoError(SetExchange(ctx, mu, exchange, e))
	got, exists, err := GetExchange(ctx, mu, exchange)
	require.NoError(err)
	require.True(exists)
	require.Equal(e, got)

	provider := codectest.NewRandomAddress()
	require.NoError(SetShares(ctx, mu, exchange, provider, 1000))
	shares, err := GetShares(ctx, mu, exchange, provider)
	require.NoError(err)
	require.Equal(uint64(1000), shares)
}

func TestFactoryRegistry(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newState()
	asset := AssetAddress([]byte("a"), []byte("A"), []byte("m"))
	exchange := ExchangeAddress(asset)

	got, err := GetExchangeForAsset(ctx, mu, asset)
	require.NoError(err)
	require.Equal(codec.EmptyAddress, got)
	got, err = GetAssetForExchange(ctx, mu, exchange)
	require.NoError(err)
	require.Equal(codec.EmptyAddress, got)

	require.NoError(SetExchangeMapping(ctx, mu, asset, exchange))
	require.NoError(SetExchangeCount(ctx, mu, 1))

	got, err = GetExchangeForAsset(ctx, mu, asset)
	require.NoError(err)
	require.Equal(exchange, got)
	got, err = GetAssetForExchange(ctx, mu, exchange)
	require.NoError(err)
	require.Equal(asset, got)
	count, err := GetExchangeCount(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(1), count)
}

func TestResultIndex(t *testing.T) {
	require := require.New(t)
	db := memdb.New()

	seq, err := GetResultSequence(db)
	require.NoError(err)
	require.Zero(seq)

	require.NoError(PutResult(db, seq, []byte(`{"success":true}`)))
	seq, err = GetResultSequence(db)
	require.NoError(err)
	require.Equal(uint64(1), seq)

	b, err := GetResult(db, 0)
	require.NoError(err)
	require.Equal([]byte(`{"success":true}`), b)

	_, err = GetResult(db, 1)
	require.ErrorIs(err, database.ErrNotFound)

	ro := NewReadOnly(db)
	_, err = ro.GetValue(context.Background(), ResultKey(1))
	require.ErrorIs(err, database.ErrNotFound)
}
