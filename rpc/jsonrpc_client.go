// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/vm"

	arpc "github.com/ava-labs/avalanchego/utils/rpc"
)

type JSONRPCClient struct {
	requester arpc.EndpointRequester
}

// NewJSONRPCClient returns a client for the service mounted at [uri].
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: arpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		Name+".ping",
		struct{}{},
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) ExchangeCount(ctx context.Context) (uint64, error) {
	resp := new(ExchangeCountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".exchangeCount",
		struct{}{},
		resp,
	)
	return resp.Count, err
}

func (cli *JSONRPCClient) GetExchange(ctx context.Context, exchange codec.Address) (*vm.ExchangeState, error) {
	resp := new(GetExchangeReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".getExchange",
		&ExchangeArgs{Exchange: exchange},
		resp,
	)
	return resp.Exchange, err
}

func (cli *JSONRPCClient) TokenToExchange(ctx context.Context, asset codec.Address) (codec.Address, error) {
	resp := new(AddressReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".tokenToExchange",
		&AssetArgs{Asset: asset},
		resp,
	)
	return resp.Address, err
}

func (cli *JSONRPCClient) ExchangeToToken(ctx context.Context, exchange codec.Address) (codec.Address, error) {
	resp := new(AddressReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".exchangeToToken",
		&ExchangeArgs{Exchange: exchange},
		resp,
	)
	return resp.Address, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".balance",
		&BalanceArgs{Address: addr},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) AssetBalance(ctx context.Context, asset codec.Address, addr codec.Address) (uint64, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".assetBalance",
		&BalanceArgs{Address: addr, Asset: asset},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Allowance(ctx context.Context, asset codec.Address, owner codec.Address, spender codec.Address) (uint64, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".allowance",
		&AllowanceArgs{Asset: asset, Owner: owner, Spender: spender},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Shares(ctx context.Context, exchange codec.Address, provider codec.Address) (uint64, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".shares",
		&SharesArgs{Exchange: exchange, Provider: provider},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Quote(ctx context.Context, exchange codec.Address, direction string, amount uint64) (uint64, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".quote",
		&QuoteArgs{Exchange: exchange, Direction: direction, Amount: amount},
		resp,
	)
	return resp.Amount, err
}

// Results returns a page of indexed results and the sequence of the next
// page.
func (cli *JSONRPCClient) Results(ctx context.Context, from uint64, limit int) ([]json.RawMessage, uint64, error) {
	resp := new(ResultsReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".results",
		&ResultsArgs{From: from, Limit: limit},
		resp,
	)
	return resp.Results, resp.Next, err
}
