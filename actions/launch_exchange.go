// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*LaunchExchange)(nil)

// LaunchExchange deploys the exchange of [Asset] and registers it with the
// factory. The new exchange holds no liquidity until it is initialized.
type LaunchExchange struct {
	Asset codec.Address `json:"asset"`
}

func (*LaunchExchange) GetTypeID() uint8 {
	return consts.LaunchExchangeID
}

func (l *LaunchExchange) StateKeys(codec.Address) state.Keys {
	exchange := storage.ExchangeAddress(l.Asset)
	return state.Keys{
		string(storage.AssetInfoKey(l.Asset)):        state.Read,
		string(storage.AssetToExchangeKey(l.Asset)):  state.All,
		string(storage.ExchangeToAssetKey(exchange)): state.All,
		string(storage.ExchangeKey(exchange)):        state.All,
		string(storage.ExchangeCountKey()):           state.All,
	}
}

func (l *LaunchExchange) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if l.Asset.Empty() || l.Asset.TypeID() != consts.AssetAddressID {
		return nil, ErrInvalidAsset
	}
	if _, exists, err := storage.GetAssetInfo(ctx, mu, l.Asset); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrInvalidAsset
	}
	existing, err := storage.GetExchangeForAsset(ctx, mu, l.Asset)
	if err != nil {
		return nil, err
	}
	if !existing.Empty() {
		return nil, ErrExchangeAlreadyExists
	}
	count, err := storage.GetExchangeCount(ctx, mu)
	if err != nil {
		return nil, err
	}
	count, err = smath.Add(count, 1)
	if err != nil {
		return nil, err
	}

	exchange := storage.ExchangeAddress(l.Asset)
	if err := storage.SetExchange(ctx, mu, exchange, &storage.Exchange{Asset: l.Asset}); err != nil {
		return nil, err
	}
	if err := storage.SetExchangeMapping(ctx, mu, l.Asset, exchange); err != nil {
		return nil, err
	}
	if err := storage.SetExchangeCount(ctx, mu, count); err != nil {
		return nil, err
	}
	emitter.Emit(&ExchangeLaunched{Asset: l.Asset, Exchange: exchange})
	return &LaunchExchangeResult{Exchange: exchange, ExchangeCount: count}, nil
}

var _ codec.Typed = (*LaunchExchangeResult)(nil)

type LaunchExchangeResult struct {
	Exchange      codec.Address `json:"exchange"`
	ExchangeCount uint64        `json:"exchangeCount"`
}

func (*LaunchExchangeResult) GetTypeID() uint8 {
	return consts.LaunchExchangeID
}
