// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*InitializeExchange)(nil)

// InitializeExchange seeds an exchange with its first liquidity. The caller
// deposits [Value] native currency and [AssetAmount] of the asset and is
// credited [pricing.BootstrapShares].
type InitializeExchange struct {
	Exchange    codec.Address `json:"exchange"`
	AssetAmount uint64        `json:"assetAmount"`
	Value       uint64        `json:"value"`
}

func (*InitializeExchange) GetTypeID() uint8 {
	return consts.InitializeExchangeID
}

func (i *InitializeExchange) StateKeys(actor codec.Address) state.Keys {
	a := storage.ExchangeAsset(i.Exchange)
	k := exchangeKeys(i.Exchange)
	k.Add(string(storage.BalanceKey(actor)), state.All)
	k.Add(string(storage.SharesKey(i.Exchange, actor)), state.All)
	return k.Union(asset.TransferFromKeys(a, i.Exchange, actor, i.Exchange))
}

func (i *InitializeExchange) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	p, err := loadPool(ctx, r, mu, i.Exchange)
	if err != nil {
		return nil, err
	}
	if p.record.Initialized || p.record.TotalShares != 0 {
		return nil, ErrAlreadyInitialized
	}
	if i.Value == 0 || i.AssetAmount == 0 {
		return nil, ErrInvalidBootstrapAmount
	}
	reserveNative, err := smath.Add(p.reserveNative, i.Value)
	if err != nil {
		return nil, err
	}

	if err := p.pullAsset(ctx, actor, i.AssetAmount); err != nil {
		return nil, err
	}
	if err := transferNative(ctx, mu, actor, i.Exchange, i.Value); err != nil {
		return nil, err
	}
	p.reserveNative = reserveNative
	p.record.ReserveAsset = i.AssetAmount
	p.record.TotalShares = pricing.BootstrapShares
	p.record.Initialized = true
	if err := p.save(ctx, mu); err != nil {
		return nil, err
	}
	if err := storage.SetShares(ctx, mu, i.Exchange, actor, pricing.BootstrapShares); err != nil {
		return nil, err
	}
	emitter.Emit(&Investment{
		Exchange:        i.Exchange,
		Provider:        actor,
		SharesPurchased: pricing.BootstrapShares,
	})
	return &InvestLiquidityResult{
		SharesPurchased: pricing.BootstrapShares,
		NativeIn:        i.Value,
		AssetIn:         i.AssetAmount,
	}, nil
}
