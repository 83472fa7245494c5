// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/version"

const (
	ByteLen   = 1
	BoolLen   = 1
	IDLen     = 32
	Uint8Len  = 1
	Uint16Len = 2
	Uint64Len = 8

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
	MaxInt64  = int64(^uint64(0) >> 1)
)

const (
	Name = "ammvm"

	// NativeSymbol and NativeDecimals describe the native currency every
	// exchange pairs against.
	NativeSymbol   = "AVAX"
	NativeDecimals = 9
)

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
