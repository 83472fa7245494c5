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
)

var _ chain.Action = (*CreateAsset)(nil)

// CreateAsset registers a new fungible asset owned by the actor. The asset
// address is derived from its metadata.
type CreateAsset struct {
	Name     []byte `json:"name"`
	Symbol   []byte `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Metadata []byte `json:"metadata"`
}

func (*CreateAsset) GetTypeID() uint8 {
	return consts.CreateAssetID
}

func (c *CreateAsset) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.AssetInfoKey(storage.AssetAddress(c.Name, c.Symbol, c.Metadata))): state.All,
	}
}

func (c *CreateAsset) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ chain.Emitter,
) (codec.Typed, error) {
	// Enforce initial invariants
	if len(c.Name) == 0 {
		return nil, ErrAssetNameEmpty
	}
	if len(c.Symbol) == 0 {
		return nil, ErrAssetSymbolEmpty
	}
	if len(c.Name) > storage.MaxAssetNameSize {
		return nil, ErrAssetNameTooLarge
	}
	if len(c.Symbol) > storage.MaxAssetSymbolSize {
		return nil, ErrAssetSymbolTooLarge
	}
	if len(c.Metadata) > storage.MaxAssetMetadataSize {
		return nil, ErrAssetMetadataTooLarge
	}
	if c.Decimals > storage.MaxAssetDecimals {
		return nil, ErrAssetDecimalsTooLarge
	}

	// Continue only if the address is free
	assetAddress := storage.AssetAddress(c.Name, c.Symbol, c.Metadata)
	if _, exists, err := storage.GetAssetInfo(ctx, mu, assetAddress); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrAssetAlreadyExists
	}

	if err := storage.SetAssetInfo(ctx, mu, assetAddress, &storage.AssetInfo{
		Name:     c.Name,
		Symbol:   c.Symbol,
		Decimals: c.Decimals,
		Metadata: c.Metadata,
		Owner:    actor,
	}); err != nil {
		return nil, err
	}
	return &CreateAssetResult{Asset: assetAddress}, nil
}

var _ codec.Typed = (*CreateAssetResult)(nil)

type CreateAssetResult struct {
	Asset codec.Address `json:"asset"`
}

func (*CreateAssetResult) GetTypeID() uint8 {
	return consts.CreateAssetID
}
