// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain/chaintest"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/storage"
)

func TestLedgerTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := chaintest.NewInMemoryStore()

	info := &storage.AssetInfo{Name: []byte("LuigiCoin"), Symbol: []byte("LC")}
	addr := storage.AssetAddress(info.Name, info.Symbol, nil)
	alice := codectest.NewRandomAddress()
	bob := codectest.NewRandomAddress()

	require.NoError(asset.Mint(ctx, store, addr, info, alice, 100))
	require.Equal(uint64(100), info.TotalSupply)

	l := asset.NewLedger(store, addr)
	require.Equal(addr, l.Address())

	ok, err := l.Transfer(ctx, alice, bob, 101)
	require.NoError(err)
	require.False(ok)

	ok, err = l.Transfer(ctx, alice, bob, 40)
	require.NoError(err)
	require.True(ok)

	bal, err := l.BalanceOf(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(60), bal)
	bal, err = l.BalanceOf(ctx, bob)
	require.NoError(err)
	require.Equal(uint64(40), bal)

	// self transfers are a no-op
	ok, err = l.Transfer(ctx, bob, bob, 40)
	require.NoError(err)
	require.True(ok)
	bal, err = l.BalanceOf(ctx, bob)
	require.NoError(err)
	require.Equal(uint64(40), bal)
}

func TestLedgerTransferFrom(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := chaintest.NewInMemoryStore()

	info := &storage.AssetInfo{Name: []byte("LuigiCoin"), Symbol: []byte("LC")}
	addr := storage.AssetAddress(info.Name, info.Symbol, nil)
	owner := codectest.NewRandomAddress()
	spender := codectest.NewRandomAddress()
	require.NoError(asset.Mint(ctx, store, addr, info, owner, 100))
	l := asset.NewLedger(store, addr)

	// no allowance
	ok, err := l.TransferFrom(ctx, spender, owner, spender, 1)
	require.NoError(err)
	require.False(ok)

	ok, err = l.Approve(ctx, owner, spender, 50)
	require.NoError(err)
	require.True(ok)
	allowance, err := l.Allowance(ctx, owner, spender)
	require.NoError(err)
	require.Equal(uint64(50), allowance)

	ok, err = l.TransferFrom(ctx, spender, owner, spender, 51)
	require.NoError(err)
	require.False(ok)

	ok, err = l.TransferFrom(ctx, spender, owner, spender, 30)
	require.NoError(err)
	require.True(ok)
	allowance, err = l.Allowance(ctx, owner, spender)
	require.NoError(err)
	require.Equal(uint64(20), allowance)
	bal, err := l.BalanceOf(ctx, spender)
	require.NoError(err)
	require.Equal(uint64(30), bal)

	// allowance above balance does not allow overdrafts
	ok, err = l.Approve(ctx, owner, spender, consts.MaxUint64)
	require.NoError(err)
	require.True(ok)
	ok, err = l.TransferFrom(ctx, spender, owner, spender, 71)
	require.NoError(err)
	require.False(ok)
	allowance, err = l.Allowance(ctx, owner, spender)
	require.NoError(err)
	require.Equal(consts.MaxUint64, allowance)
}

func TestMintOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := chaintest.NewInMemoryStore()

	info := &storage.AssetInfo{Name: []byte("LuigiCoin"), Symbol: []byte("LC"), TotalSupply: consts.MaxUint64}
	addr := storage.AssetAddress(info.Name, info.Symbol, nil)
	require.Error(asset.Mint(ctx, store, addr, info, codectest.NewRandomAddress(), 1))
	require.Equal(consts.MaxUint64, info.TotalSupply)
}

func TestTransferKeys(t *testing.T) {
	require := require.New(t)
	addr := storage.AssetAddress([]byte("LuigiCoin"), []byte("LC"), nil)
	from := codectest.NewRandomAddress()
	to := codectest.NewRandomAddress()

	require.Len(asset.TransferKeys(addr, from, to), 2)
	require.Len(asset.TransferKeys(addr, from, from), 1)
	k := asset.TransferFromKeys(addr, to, from, to)
	require.Len(k, 3)
	require.Contains(k, string(storage.AllowanceKey(addr, from, to)))
}
