// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

var _ chain.Action = (*MintAsset)(nil)

// MintAsset issues [Value] new units of [Asset] to [To]. Only the asset
// owner may mint.
type MintAsset struct {
	Asset codec.Address `json:"asset"`
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`
}

func (*MintAsset) GetTypeID() uint8 {
	return consts.MintAssetID
}

func (m *MintAsset) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.AssetInfoKey(m.Asset)):          state.Read | state.Write,
		string(storage.AssetBalanceKey(m.Asset, m.To)): state.All,
	}
}

func (m *MintAsset) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ chain.Emitter,
) (codec.Typed, error) {
	if m.Value == 0 {
		return nil, ErrValueZero
	}
	if m.To.Empty() {
		return nil, ErrInvalidRecipient
	}
	info, exists, err := storage.GetAssetInfo(ctx, mu, m.Asset)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAssetDoesNotExist
	}
	if info.Owner != actor {
		return nil, ErrNotAssetOwner
	}
	if err := asset.Mint(ctx, mu, m.Asset, info, m.To, m.Value); err != nil {
		return nil, err
	}
	return &MintAssetResult{TotalSupply: info.TotalSupply}, nil
}

var _ codec.Typed = (*MintAssetResult)(nil)

type MintAssetResult struct {
	TotalSupply uint64 `json:"totalSupply"`
}

func (*MintAssetResult) GetTypeID() uint8 {
	return consts.MintAssetID
}
