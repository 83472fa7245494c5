// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/chain/chaintest"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
)

func TestLiquidity(t *testing.T) {
	const (
		investment     = 3 * unit / 10
		assetRequired  = 300_000_001
		sharesReceived = 300
	)

	f := newFixture(t)
	lc, exchange := f.newPool(t, "LC", unit, unit)
	other := codectest.NewRandomAddress()
	f.fund(t, other, 10*unit)
	f.exec(t, f.actor, &MintAsset{Asset: lc, To: other, Value: 10 * unit})
	f.approve(t, other, lc, exchange, consts.MaxUint64)

	conserved := func(ctx context.Context, t *testing.T, m state.Mutable) {
		require.Equal(t,
			totalShares(ctx, t, m, exchange),
			sharesOf(ctx, t, m, exchange, f.actor)+sharesOf(ctx, t, m, exchange, other),
		)
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "Deadline expired",
			Action:      &InvestLiquidity{Exchange: exchange, Value: investment, Deadline: 1},
			Timestamp:   2,
			ExpectedErr: ErrExpired,
			State:       f.store,
			Actor:       other,
		},
		{
			Name:        "Value cannot be zero",
			Action:      &InvestLiquidity{Exchange: exchange, Deadline: 1},
			ExpectedErr: ErrZeroInput,
			State:       f.store,
			Actor:       other,
		},
		{
			Name:        "Value must buy a whole share",
			Action:      &InvestLiquidity{Exchange: exchange, Value: 1, Deadline: 1},
			ExpectedErr: ErrInsufficientNativeSent,
			State:       f.store,
			Actor:       other,
		},
		{
			Name: "Shares below minimum",
			Action: &InvestLiquidity{
				Exchange:  exchange,
				Value:     investment,
				MinShares: sharesReceived + 1,
				Deadline:  1,
			},
			ExpectedErr: ErrInsufficientSharesPurchased,
			State:       f.store,
			Actor:       other,
		},
		{
			Name: "Required asset above maximum",
			Action: &InvestLiquidity{
				Exchange:   exchange,
				Value:      investment,
				MaxAssetIn: assetRequired - 1,
				Deadline:   1,
			},
			ExpectedErr: ErrExcessiveInput,
			State:       f.store,
			Actor:       other,
			Assertion:   conserved,
		},
		{
			Name: "Invest thirty percent",
			Action: &InvestLiquidity{
				Exchange:   exchange,
				Value:      investment,
				MinShares:  sharesReceived,
				MaxAssetIn: assetRequired,
				Deadline:   1,
			},
			ExpectedOutputs: &InvestLiquidityResult{
				SharesPurchased: sharesReceived,
				NativeIn:        investment,
				AssetIn:         assetRequired,
			},
			ExpectedEvents: []codec.Typed{
				&Investment{Exchange: exchange, Provider: other, SharesPurchased: sharesReceived},
			},
			State: f.store,
			Actor: other,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				native, reserveAsset := reserves(ctx, t, m, exchange)
				require.Equal(uint64(unit+investment), native)
				require.Equal(uint64(unit+assetRequired), reserveAsset)
				require.Equal(uint64(1_000+sharesReceived), totalShares(ctx, t, m, exchange))
				require.Equal(uint64(sharesReceived), sharesOf(ctx, t, m, exchange, other))
				require.Equal(uint64(10*unit-investment), nativeBalance(ctx, t, m, other))
				require.Equal(uint64(10*unit-assetRequired), assetBalance(ctx, t, m, lc, other))
				conserved(ctx, t, m)
			},
		},
		{
			Name:        "Cannot burn zero shares",
			Action:      &DivestLiquidity{Exchange: exchange, Deadline: 1},
			ExpectedErr: ErrInsufficientShares,
			State:       f.store,
			Actor:       other,
		},
		{
			Name:        "Cannot burn more than owned",
			Action:      &DivestLiquidity{Exchange: exchange, Shares: sharesReceived + 1, Deadline: 1},
			ExpectedErr: ErrInsufficientShares,
			State:       f.store,
			Actor:       other,
		},
		{
			Name: "Divestment below minimum",
			Action: &DivestLiquidity{
				Exchange:     exchange,
				Shares:       sharesReceived,
				MinNativeOut: investment + 1,
				Deadline:     1,
			},
			ExpectedErr: ErrExcessiveDivestment,
			State:       f.store,
			Actor:       other,
		},
		{
			Name: "Divest investor",
			Action: &DivestLiquidity{
				Exchange:     exchange,
				Shares:       sharesReceived,
				MinNativeOut: investment,
				MinAssetOut:  investment,
				Deadline:     1,
			},
			ExpectedOutputs: &DivestLiquidityResult{
				SharesBurned: sharesReceived,
				NativeOut:    investment,
				AssetOut:     investment,
			},
			ExpectedEvents: []codec.Typed{
				&Divestment{Exchange: exchange, Provider: other, SharesBurned: sharesReceived},
			},
			State: f.store,
			Actor: other,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				native, reserveAsset := reserves(ctx, t, m, exchange)
				require.Equal(uint64(unit), native)
				// rounding leaves the pool one unit ahead
				require.Equal(uint64(unit+1), reserveAsset)
				require.Zero(sharesOf(ctx, t, m, exchange, other))
				require.Equal(uint64(10*unit), nativeBalance(ctx, t, m, other))
				conserved(ctx, t, m)
			},
		},
		{
			Name:   "Divest everything",
			Action: &DivestLiquidity{Exchange: exchange, Shares: 1_000, Deadline: 1},
			ExpectedOutputs: &DivestLiquidityResult{
				SharesBurned: 1_000,
				NativeOut:    unit,
				AssetOut:     unit + 1,
			},
			State: f.store,
			Actor: f.actor,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				native, reserveAsset := reserves(ctx, t, m, exchange)
				require.Zero(native)
				require.Zero(reserveAsset)
				require.Zero(totalShares(ctx, t, m, exchange))
				require.Zero(assetBalance(ctx, t, m, lc, exchange))
				conserved(ctx, t, m)
			},
		},
		{
			Name:        "Drained exchange rejects swaps",
			Action:      &NativeToAssetSwap{Exchange: exchange, Value: unit, Deadline: 1},
			ExpectedErr: ErrNotInitialized,
			State:       f.store,
			Actor:       f.actor,
		},
		{
			Name:        "Drained exchange rejects investments",
			Action:      &InvestLiquidity{Exchange: exchange, Value: unit, Deadline: 1},
			ExpectedErr: ErrNotInitialized,
			State:       f.store,
			Actor:       f.actor,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
