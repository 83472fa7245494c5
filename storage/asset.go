// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"
)

// AssetInfo is the metadata of a fungible asset.
type AssetInfo struct {
	Name        []byte        `json:"name"`
	Symbol      []byte        `json:"symbol"`
	Decimals    uint8         `json:"decimals"`
	Metadata    []byte        `json:"metadata"`
	TotalSupply uint64        `json:"totalSupply"`
	Owner       codec.Address `json:"owner"`
}

// AssetAddress derives the address of an asset from its metadata.
func AssetAddress(name []byte, symbol []byte, metadata []byte) codec.Address {
	v := make([]byte, 0, len(name)+len(symbol)+len(metadata))
	v = append(v, name...)
	v = append(v, symbol...)
	v = append(v, metadata...)
	return codec.DeriveAddress(consts.AssetAddressID, v)
}

// [assetInfoPrefix] + [asset]
func AssetInfoKey(asset codec.Address) []byte {
	return keys.New(assetInfoPrefix, AssetInfoChunks, asset[:])
}

// [assetBalancePrefix] + [asset] + [account]
func AssetBalanceKey(asset codec.Address, account codec.Address) []byte {
	return keys.New(assetBalancePrefix, AssetBalanceChunks, asset[:], account[:])
}

// [allowancePrefix] + [asset] + [owner] + [spender]
func AllowanceKey(asset codec.Address, owner codec.Address, spender codec.Address) []byte {
	return keys.New(allowancePrefix, AllowanceChunks, asset[:], owner[:], spender[:])
}

func SetAssetInfo(ctx context.Context, mu state.Mutable, asset codec.Address, info *AssetInfo) error {
	nameLen := len(info.Name)
	symbolLen := len(info.Symbol)
	metadataLen := len(info.Metadata)
	size := consts.Uint16Len + nameLen + consts.Uint16Len + symbolLen + consts.Uint8Len +
		consts.Uint16Len + metadataLen + consts.Uint64Len + codec.AddressLen
	v := make([]byte, 0, size)

	v = binary.BigEndian.AppendUint16(v, uint16(nameLen))
	v = append(v, info.Name...)
	v = binary.BigEndian.AppendUint16(v, uint16(symbolLen))
	v = append(v, info.Symbol...)
	v = append(v, info.Decimals)
	v = binary.BigEndian.AppendUint16(v, uint16(metadataLen))
	v = append(v, info.Metadata...)
	v = binary.BigEndian.AppendUint64(v, info.TotalSupply)
	v = append(v, info.Owner[:]...)
	return mu.Insert(ctx, AssetInfoKey(asset), v)
}

// GetAssetInfo returns the metadata of [asset] and whether it exists.
func GetAssetInfo(ctx context.Context, im state.Immutable, asset codec.Address) (*AssetInfo, bool, error) {
	v, err := im.GetValue(ctx, AssetInfoKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	info, err := parseAssetInfo(v)
	if err != nil {
		return nil, false, err
	}
	return info, true, nil
}

func parseAssetInfo(v []byte) (*AssetInfo, error) {
	var (
		info   AssetInfo
		offset int
	)
	readBytes := func() ([]byte, bool) {
		if len(v) < offset+consts.Uint16Len {
			return nil, false
		}
		l := int(binary.BigEndian.Uint16(v[offset:]))
		offset += consts.Uint16Len
		if len(v) < offset+l {
			return nil, false
		}
		b := v[offset : offset+l]
		offset += l
		return b, true
	}

	var ok bool
	if info.Name, ok = readBytes(); !ok {
		return nil, ErrInvalidRecord
	}
	if info.Symbol, ok = readBytes(); !ok {
		return nil, ErrInvalidRecord
	}
	if len(v) < offset+consts.Uint8Len {
		return nil, ErrInvalidRecord
	}
	info.Decimals = v[offset]
	offset += consts.Uint8Len
	if info.Metadata, ok = readBytes(); !ok {
		return nil, ErrInvalidRecord
	}
	if len(v) != offset+consts.Uint64Len+codec.AddressLen {
		return nil, ErrInvalidRecord
	}
	info.TotalSupply = binary.BigEndian.Uint64(v[offset:])
	offset += consts.Uint64Len
	info.Owner = codec.Address(v[offset:])
	return &info, nil
}

func GetAssetBalance(ctx context.Context, im state.Immutable, asset codec.Address, account codec.Address) (uint64, error) {
	return getUint64(ctx, im, AssetBalanceKey(asset, account))
}

func SetAssetBalance(ctx context.Context, mu state.Mutable, asset codec.Address, account codec.Address, balance uint64) error {
	return setUint64(ctx, mu, AssetBalanceKey(asset, account), balance)
}

func GetAllowance(ctx context.Context, im state.Immutable, asset codec.Address, owner codec.Address, spender codec.Address) (uint64, error) {
	return getUint64(ctx, im, AllowanceKey(asset, owner, spender))
}

func SetAllowance(ctx context.Context, mu state.Mutable, asset codec.Address, owner codec.Address, spender codec.Address, amount uint64) error {
	return setUint64(ctx, mu, AllowanceKey(asset, owner, spender), amount)
}
