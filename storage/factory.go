// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"
)

// [assetToExchangePrefix] + [asset]
func AssetToExchangeKey(asset codec.Address) []byte {
	return mappingKey(assetToExchangePrefix, asset)
}

// [exchangeToAssetPrefix] + [exchange]
func ExchangeToAssetKey(exchange codec.Address) []byte {
	return mappingKey(exchangeToAssetPrefix, exchange)
}

func ExchangeCountKey() []byte {
	return keys.New(exchangeCountPrefix, ExchangeCountChunks)
}

func mappingKey(prefix byte, addr codec.Address) []byte {
	return keys.New(prefix, ExchangeMappingChunks, addr[:])
}

// GetExchangeForAsset returns the exchange registered for [asset] or
// [codec.EmptyAddress] when there is none.
func GetExchangeForAsset(ctx context.Context, im state.Immutable, asset codec.Address) (codec.Address, error) {
	return getAddress(ctx, im, AssetToExchangeKey(asset))
}

// GetAssetForExchange returns the asset traded by [exchange] or
// [codec.EmptyAddress] when [exchange] is unknown.
func GetAssetForExchange(ctx context.Context, im state.Immutable, exchange codec.Address) (codec.Address, error) {
	return getAddress(ctx, im, ExchangeToAssetKey(exchange))
}

// SetExchangeMapping records both directions of the asset <-> exchange
// registry.
func SetExchangeMapping(ctx context.Context, mu state.Mutable, asset codec.Address, exchange codec.Address) error {
	if err := mu.Insert(ctx, AssetToExchangeKey(asset), exchange[:]); err != nil {
		return err
	}
	return mu.Insert(ctx, ExchangeToAssetKey(exchange), asset[:])
}

func GetExchangeCount(ctx context.Context, im state.Immutable) (uint64, error) {
	return getUint64(ctx, im, ExchangeCountKey())
}

func SetExchangeCount(ctx context.Context, mu state.Mutable, count uint64) error {
	return setUint64(ctx, mu, ExchangeCountKey(), count)
}

func getAddress(ctx context.Context, im state.Immutable, key []byte) (codec.Address, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, nil
	}
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ToAddress(v)
}
