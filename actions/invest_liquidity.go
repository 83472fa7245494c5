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

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*InvestLiquidity)(nil)

// InvestLiquidity deposits [Value] native currency and the matching amount
// of the asset at the current ratio in exchange for new shares.
type InvestLiquidity struct {
	Exchange  codec.Address `json:"exchange"`
	Value     uint64        `json:"value"`
	MinShares uint64        `json:"minShares"`
	// MaxAssetIn bounds the asset deposit; 0 disables the bound
	MaxAssetIn uint64 `json:"maxAssetIn"`
	Deadline   int64  `json:"deadline"`
}

func (*InvestLiquidity) GetTypeID() uint8 {
	return consts.InvestLiquidityID
}

func (i *InvestLiquidity) StateKeys(actor codec.Address) state.Keys {
	k := exchangeKeys(i.Exchange)
	k.Add(string(storage.BalanceKey(actor)), state.All)
	k.Add(string(storage.SharesKey(i.Exchange, actor)), state.All)
	return k.Union(asset.TransferFromKeys(storage.ExchangeAsset(i.Exchange), i.Exchange, actor, i.Exchange))
}

func (i *InvestLiquidity) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if err := checkDeadline(timestamp, i.Deadline); err != nil {
		return nil, err
	}
	p, err := loadLivePool(ctx, r, mu, i.Exchange)
	if err != nil {
		return nil, err
	}
	if i.Value == 0 {
		return nil, ErrZeroInput
	}

	// Ratios use the native reserve before the deposit
	shares, err := pricing.InvestmentShares(p.record.TotalShares, i.Value, p.reserveNative)
	if err != nil {
		return nil, err
	}
	if shares == 0 {
		return nil, ErrInsufficientNativeSent
	}
	if shares < i.MinShares {
		return nil, fmt.Errorf("%w: got %d, wanted at least %d", ErrInsufficientSharesPurchased, shares, i.MinShares)
	}
	assetIn, err := pricing.AssetRequired(p.record.ReserveAsset, i.Value, p.reserveNative)
	if err != nil {
		return nil, err
	}
	if i.MaxAssetIn > 0 && assetIn > i.MaxAssetIn {
		return nil, fmt.Errorf("%w: requires %d, max %d", ErrExcessiveInput, assetIn, i.MaxAssetIn)
	}

	owned, err := storage.GetShares(ctx, mu, i.Exchange, actor)
	if err != nil {
		return nil, err
	}
	owned, err = smath.Add(owned, shares)
	if err != nil {
		return nil, err
	}
	totalShares, err := smath.Add(p.record.TotalShares, shares)
	if err != nil {
		return nil, err
	}
	reserveAsset, err := smath.Add(p.record.ReserveAsset, assetIn)
	if err != nil {
		return nil, err
	}

	if err := p.pullAsset(ctx, actor, assetIn); err != nil {
		return nil, err
	}
	if err := transferNative(ctx, mu, actor, i.Exchange, i.Value); err != nil {
		return nil, err
	}
	p.record.ReserveAsset = reserveAsset
	p.record.TotalShares = totalShares
	if err := p.save(ctx, mu); err != nil {
		return nil, err
	}
	if err := storage.SetShares(ctx, mu, i.Exchange, actor, owned); err != nil {
		return nil, err
	}
	emitter.Emit(&Investment{
		Exchange:        i.Exchange,
		Provider:        actor,
		SharesPurchased: shares,
	})
	return &InvestLiquidityResult{
		SharesPurchased: shares,
		NativeIn:        i.Value,
		AssetIn:         assetIn,
	}, nil
}

var _ codec.Typed = (*InvestLiquidityResult)(nil)

type InvestLiquidityResult struct {
	SharesPurchased uint64 `json:"sharesPurchased"`
	NativeIn        uint64 `json:"nativeIn"`
	AssetIn         uint64 `json:"assetIn"`
}

func (*InvestLiquidityResult) GetTypeID() uint8 {
	return consts.InvestLiquidityID
}
