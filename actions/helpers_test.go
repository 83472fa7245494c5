// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/chain/chaintest"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

const (
	unit = 1_000_000_000

	initialNative = 100 * unit
	initialAsset  = 1_000 * unit

	TooLargeAssetSymbol = "AAAAAAAAA"
)

// fixture is an in-memory engine state with a funded actor.
type fixture struct {
	store *chaintest.InMemoryStore
	actor codec.Address
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		store: chaintest.NewInMemoryStore(),
		actor: codectest.NewRandomAddress(),
	}
	f.fund(t, f.actor, initialNative)
	return f
}

func (f *fixture) exec(t *testing.T, actor codec.Address, action chain.Action) codec.Typed {
	result, err := chaintest.Execute(context.Background(), nil, f.store, 0, actor, action)
	require.NoError(t, err)
	return result.Output
}

func (f *fixture) fund(t *testing.T, addr codec.Address, amount uint64) {
	require.NoError(t, storage.SetBalance(context.Background(), f.store, addr, amount))
}

// newAsset creates an asset owned by the actor and mints [initialAsset] to
// the actor.
func (f *fixture) newAsset(t *testing.T, symbol string) codec.Address {
	out := f.exec(t, f.actor, &CreateAsset{
		Name:     []byte(symbol + " coin"),
		Symbol:   []byte(symbol),
		Decimals: consts.NativeDecimals,
	})
	assetAddress := out.(*CreateAssetResult).Asset
	f.exec(t, f.actor, &MintAsset{Asset: assetAddress, To: f.actor, Value: initialAsset})
	return assetAddress
}

func (f *fixture) approve(t *testing.T, owner codec.Address, assetAddress codec.Address, spender codec.Address, amount uint64) {
	f.exec(t, owner, &ApproveAsset{Asset: assetAddress, Spender: spender, Value: amount})
}

func (f *fixture) launch(t *testing.T, assetAddress codec.Address) codec.Address {
	out := f.exec(t, f.actor, &LaunchExchange{Asset: assetAddress})
	return out.(*LaunchExchangeResult).Exchange
}

// newPool creates a fresh asset and an exchange for it seeded by the actor.
// The actor approves the exchange for all of its asset.
func (f *fixture) newPool(t *testing.T, symbol string, native uint64, assetAmount uint64) (codec.Address, codec.Address) {
	assetAddress := f.newAsset(t, symbol)
	exchange := f.launch(t, assetAddress)
	f.approve(t, f.actor, assetAddress, exchange, consts.MaxUint64)
	f.exec(t, f.actor, &InitializeExchange{Exchange: exchange, AssetAmount: assetAmount, Value: native})
	return assetAddress, exchange
}

func reserves(ctx context.Context, t *testing.T, im state.Immutable, exchange codec.Address) (uint64, uint64) {
	record, exists, err := storage.GetExchange(ctx, im, exchange)
	require.NoError(t, err)
	require.True(t, exists)
	native, err := storage.GetBalance(ctx, im, exchange)
	require.NoError(t, err)
	return native, record.ReserveAsset
}

func totalShares(ctx context.Context, t *testing.T, im state.Immutable, exchange codec.Address) uint64 {
	record, exists, err := storage.GetExchange(ctx, im, exchange)
	require.NoError(t, err)
	require.True(t, exists)
	return record.TotalShares
}

func nativeBalance(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address) uint64 {
	bal, err := storage.GetBalance(ctx, im, addr)
	require.NoError(t, err)
	return bal
}

func assetBalance(ctx context.Context, t *testing.T, im state.Immutable, assetAddress codec.Address, addr codec.Address) uint64 {
	bal, err := storage.GetAssetBalance(ctx, im, assetAddress, addr)
	require.NoError(t, err)
	return bal
}

func sharesOf(ctx context.Context, t *testing.T, im state.Immutable, exchange codec.Address, addr codec.Address) uint64 {
	shares, err := storage.GetShares(ctx, im, exchange, addr)
	require.NoError(t, err)
	return shares
}

// mockRules resolves every asset to [fa].
type mockRules struct {
	fa asset.FungibleAsset
}

func (m *mockRules) FungibleAsset(state.Mutable, codec.Address) asset.FungibleAsset {
	return m.fa
}
