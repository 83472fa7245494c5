// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/server"
	"github.com/ava-labs/ammvm/vm"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// NewJSONRPCHandler serves [v] under the [Name] service.
func NewJSONRPCHandler(v VM) (http.Handler, error) {
	return server.NewJSONRPCHandler(Name, NewJSONRPCServer(v))
}

type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type ExchangeCountReply struct {
	Count uint64 `json:"count"`
}

func (j *JSONRPCServer) ExchangeCount(req *http.Request, _ *struct{}, reply *ExchangeCountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.ExchangeCount")
	defer span.End()

	count, err := j.vm.ExchangeCount(ctx)
	if err != nil {
		return err
	}
	reply.Count = count
	return nil
}

type ExchangeArgs struct {
	Exchange codec.Address `json:"exchange"`
}

type GetExchangeReply struct {
	Exchange *vm.ExchangeState `json:"exchange"`
}

func (j *JSONRPCServer) GetExchange(req *http.Request, args *ExchangeArgs, reply *GetExchangeReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.GetExchange")
	defer span.End()

	e, exists, err := j.vm.GetExchange(ctx, args.Exchange)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrExchangeNotFound, args.Exchange)
	}
	reply.Exchange = e
	return nil
}

type AssetArgs struct {
	Asset codec.Address `json:"asset"`
}

type AddressReply struct {
	Address codec.Address `json:"address"`
}

func (j *JSONRPCServer) TokenToExchange(req *http.Request, args *AssetArgs, reply *AddressReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.TokenToExchange")
	defer span.End()

	addr, err := j.vm.TokenToExchange(ctx, args.Asset)
	if err != nil {
		return err
	}
	reply.Address = addr
	return nil
}

func (j *JSONRPCServer) ExchangeToToken(req *http.Request, args *ExchangeArgs, reply *AddressReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.ExchangeToToken")
	defer span.End()

	addr, err := j.vm.ExchangeToToken(ctx, args.Exchange)
	if err != nil {
		return err
	}
	reply.Address = addr
	return nil
}

type BalanceArgs struct {
	Address codec.Address `json:"address"`
	// Asset is ignored by [JSONRPCServer.Balance]
	Asset codec.Address `json:"asset"`
}

type AmountReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *AmountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	balance, err := j.vm.NativeBalance(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

func (j *JSONRPCServer) AssetBalance(req *http.Request, args *BalanceArgs, reply *AmountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.AssetBalance")
	defer span.End()

	balance, err := j.vm.AssetBalance(ctx, args.Asset, args.Address)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type AllowanceArgs struct {
	Asset   codec.Address `json:"asset"`
	Owner   codec.Address `json:"owner"`
	Spender codec.Address `json:"spender"`
}

func (j *JSONRPCServer) Allowance(req *http.Request, args *AllowanceArgs, reply *AmountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Allowance")
	defer span.End()

	allowance, err := j.vm.Allowance(ctx, args.Asset, args.Owner, args.Spender)
	if err != nil {
		return err
	}
	reply.Amount = allowance
	return nil
}

type SharesArgs struct {
	Exchange codec.Address `json:"exchange"`
	Provider codec.Address `json:"provider"`
}

func (j *JSONRPCServer) Shares(req *http.Request, args *SharesArgs, reply *AmountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Shares")
	defer span.End()

	shares, err := j.vm.SharesOf(ctx, args.Exchange, args.Provider)
	if err != nil {
		return err
	}
	reply.Amount = shares
	return nil
}

type QuoteArgs struct {
	Exchange  codec.Address `json:"exchange"`
	Direction string        `json:"direction"`
	Amount    uint64        `json:"amount"`
}

func (j *JSONRPCServer) Quote(req *http.Request, args *QuoteArgs, reply *AmountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Quote", oteltrace.WithAttributes(
		attribute.String("direction", args.Direction),
	))
	defer span.End()

	amount, err := j.vm.Quote(ctx, args.Exchange, args.Direction, args.Amount)
	if err != nil {
		return err
	}
	reply.Amount = amount
	return nil
}

type ResultsArgs struct {
	From  uint64 `json:"from"`
	Limit int    `json:"limit"`
}

type ResultsReply struct {
	Results []json.RawMessage `json:"results"`
	// Next is the sequence to request to continue after [Results]
	Next  uint64 `json:"next"`
	Total uint64 `json:"total"`
}

func (j *JSONRPCServer) Results(_ *http.Request, args *ResultsArgs, reply *ResultsReply) error {
	if args.Limit <= 0 || args.Limit > MaxResults {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, args.Limit)
	}
	results, err := j.vm.Results(args.From, args.Limit)
	if err != nil {
		return err
	}
	reply.Results = results
	reply.Next = args.From + uint64(len(results))
	reply.Total = j.vm.ResultCount()
	return nil
}
