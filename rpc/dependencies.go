// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/vm"
)

// VM is the read-only surface of the engine served over JSON-RPC.
type VM interface {
	Logger() logging.Logger
	Tracer() trace.Tracer

	ExchangeCount(ctx context.Context) (uint64, error)
	GetExchange(ctx context.Context, exchange codec.Address) (*vm.ExchangeState, bool, error)
	TokenToExchange(ctx context.Context, asset codec.Address) (codec.Address, error)
	ExchangeToToken(ctx context.Context, exchange codec.Address) (codec.Address, error)
	NativeBalance(ctx context.Context, addr codec.Address) (uint64, error)
	AssetBalance(ctx context.Context, asset codec.Address, addr codec.Address) (uint64, error)
	Allowance(ctx context.Context, asset codec.Address, owner codec.Address, spender codec.Address) (uint64, error)
	SharesOf(ctx context.Context, exchange codec.Address, provider codec.Address) (uint64, error)
	Quote(ctx context.Context, exchange codec.Address, direction string, amount uint64) (uint64, error)
	Results(from uint64, limit int) ([]json.RawMessage, error)
	ResultCount() uint64
}
