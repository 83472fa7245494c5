// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

var _ chain.Action = (*DivestLiquidity)(nil)

// DivestLiquidity burns [Shares] of the actor and pays out the matching
// fraction of both reserves.
type DivestLiquidity struct {
	Exchange     codec.Address `json:"exchange"`
	Shares       uint64        `json:"shares"`
	MinNativeOut uint64        `json:"minNativeOut"`
	MinAssetOut  uint64        `json:"minAssetOut"`
	Deadline     int64         `json:"deadline"`
}

func (*DivestLiquidity) GetTypeID() uint8 {
	return consts.DivestLiquidityID
}

func (d *DivestLiquidity) StateKeys(actor codec.Address) state.Keys {
	k := exchangeKeys(d.Exchange)
	k.Add(string(storage.BalanceKey(actor)), state.All)
	k.Add(string(storage.SharesKey(d.Exchange, actor)), state.All)
	return k.Union(asset.TransferKeys(storage.ExchangeAsset(d.Exchange), d.Exchange, actor))
}

func (d *DivestLiquidity) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if err := checkDeadline(timestamp, d.Deadline); err != nil {
		return nil, err
	}
	p, err := loadPool(ctx, r, mu, d.Exchange)
	if err != nil {
		return nil, err
	}
	owned, err := storage.GetShares(ctx, mu, d.Exchange, actor)
	if err != nil {
		return nil, err
	}
	if d.Shares == 0 || d.Shares > owned {
		return nil, fmt.Errorf("%w: burning %d, owns %d", ErrInsufficientShares, d.Shares, owned)
	}
	nativeOut, assetOut, err := pricing.DivestAmounts(p.reserveNative, p.record.ReserveAsset, d.Shares, p.record.TotalShares)
	if err != nil {
		return nil, err
	}
	if nativeOut < d.MinNativeOut || assetOut < d.MinAssetOut {
		return nil, fmt.Errorf(
			"%w: native %d (min %d), asset %d (min %d)",
			ErrExcessiveDivestment,
			nativeOut,
			d.MinNativeOut,
			assetOut,
			d.MinAssetOut,
		)
	}

	p.record.TotalShares -= d.Shares
	p.record.ReserveAsset -= assetOut
	if err := p.save(ctx, mu); err != nil {
		return nil, err
	}
	if err := storage.SetShares(ctx, mu, d.Exchange, actor, owned-d.Shares); err != nil {
		return nil, err
	}
	if err := transferNative(ctx, mu, d.Exchange, actor, nativeOut); err != nil {
		return nil, err
	}
	if err := p.pushAsset(ctx, actor, assetOut); err != nil {
		return nil, err
	}
	emitter.Emit(&Divestment{
		Exchange:     d.Exchange,
		Provider:     actor,
		SharesBurned: d.Shares,
	})
	return &DivestLiquidityResult{
		SharesBurned: d.Shares,
		NativeOut:    nativeOut,
		AssetOut:     assetOut,
	}, nil
}

var _ codec.Typed = (*DivestLiquidityResult)(nil)

type DivestLiquidityResult struct {
	SharesBurned uint64 `json:"sharesBurned"`
	NativeOut    uint64 `json:"nativeOut"`
	AssetOut     uint64 `json:"assetOut"`
}

func (*DivestLiquidityResult) GetTypeID() uint8 {
	return consts.DivestLiquidityID
}
