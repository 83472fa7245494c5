// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/vm"
)

const (
	defaultDeadlineWindow = 300
	exchangePrefix        = "exchange:"
	maxAmount             = "max"
)

type builder func(ctx context.Context, r *runner, p params) (chain.Action, error)

var builders = map[string]builder{
	"create_asset":           buildCreateAsset,
	"mint_asset":             buildMintAsset,
	"transfer_asset":         buildTransferAsset,
	"approve_asset":          buildApproveAsset,
	"transfer_native":        buildTransferNative,
	"launch_exchange":        buildLaunchExchange,
	"initialize_exchange":    buildInitializeExchange,
	"native_to_asset":        buildNativeToAsset,
	"native_to_asset_output": buildNativeToAssetOutput,
	"deposit":                buildDeposit,
	"asset_to_native":        buildAssetToNative,
	"asset_to_native_output": buildAssetToNativeOutput,
	"asset_to_asset":         buildAssetToAsset,
	"invest":                 buildInvest,
	"divest":                 buildDivest,
}

// runner executes the steps of a [Plan] one call at a time.
type runner struct {
	vm  *vm.VM
	log logging.Logger
	out io.Writer

	// symbol --> asset created by the plan
	assets map[string]codec.Address
}

func newRunner(v *vm.VM, log logging.Logger, out io.Writer) *runner {
	return &runner{
		vm:     v,
		log:    log,
		out:    out,
		assets: make(map[string]codec.Address),
	}
}

func (r *runner) Run(ctx context.Context, plan *Plan) error {
	if err := plan.Verify(); err != nil {
		return err
	}
	if plan.Timestamp > 0 {
		r.vm.SetTimestamp(plan.Timestamp)
	}
	r.log.Info("running plan",
		zap.String("name", plan.Name),
		zap.Int("steps", len(plan.Steps)),
	)

	enc := json.NewEncoder(r.out)
	for i, step := range plan.Steps {
		resp, err := r.runStep(ctx, i, step)
		if err != nil {
			return err
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) runStep(ctx context.Context, id int, step Step) (*Response, error) {
	action, err := builders[step.Action](ctx, r, params(step.Params))
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrInvalidStep, id, err)
	}

	resp := &Response{
		ID:          id,
		Description: step.Description,
		Action:      step.Action,
	}
	result, execErr := r.vm.Execute(ctx, accountAddress(step.Actor), action)
	if result == nil {
		// the call was not even attempted
		return nil, execErr
	}
	resp.Success = result.Success
	resp.Output = result.Output
	resp.Events = result.Events
	resp.Error = result.Error

	switch {
	case len(step.ExpectError) > 0 && execErr == nil:
		return nil, fmt.Errorf("%w: step %d succeeded, expected %q", ErrUnexpectedResult, id, step.ExpectError)
	case len(step.ExpectError) > 0 && !strings.Contains(execErr.Error(), step.ExpectError):
		return nil, fmt.Errorf("%w: step %d failed with %q, expected %q", ErrUnexpectedResult, id, execErr, step.ExpectError)
	case len(step.ExpectError) == 0 && execErr != nil:
		return nil, fmt.Errorf("%w: step %d: %w", ErrUnexpectedResult, id, execErr)
	}

	if out, ok := result.Output.(*actions.CreateAssetResult); ok {
		r.assets[step.Params["symbol"]] = out.Asset
	}
	r.log.Debug("executed step",
		zap.Int("id", id),
		zap.String("action", step.Action),
		zap.Bool("success", result.Success),
	)
	return resp, nil
}

// address resolves an account name, "exchange:<symbol>" or a hex address.
func (r *runner) address(s string) (codec.Address, error) {
	switch {
	case strings.HasPrefix(s, exchangePrefix):
		asset, err := r.asset(strings.TrimPrefix(s, exchangePrefix))
		if err != nil {
			return codec.EmptyAddress, err
		}
		return storage.ExchangeAddress(asset), nil
	case strings.HasPrefix(s, "0x"):
		return codec.ParseAddress(s)
	default:
		return accountAddress(s), nil
	}
}

// asset resolves a symbol created earlier in the plan or a hex address.
func (r *runner) asset(s string) (codec.Address, error) {
	if addr, ok := r.assets[s]; ok {
		return addr, nil
	}
	if strings.HasPrefix(s, "0x") {
		return codec.ParseAddress(s)
	}
	return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrUnknownAsset, s)
}

func (r *runner) decimals(ctx context.Context, asset codec.Address) (uint8, error) {
	info, exists, err := r.vm.AssetInfo(ctx, asset)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return info.Decimals, nil
}

func (r *runner) deadline(p params) (int64, error) {
	s, ok := p.optional("deadline")
	if !ok {
		return r.vm.Timestamp() + defaultDeadlineWindow, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w deadline: %w", ErrInvalidParam, err)
	}
	return v, nil
}

// pool resolves the "asset" parameter to the asset, its exchange and its
// decimals.
func (r *runner) pool(ctx context.Context, p params) (codec.Address, codec.Address, uint8, error) {
	s, err := p.required("asset")
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, 0, err
	}
	asset, err := r.asset(s)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, 0, err
	}
	decimals, err := r.decimals(ctx, asset)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, 0, err
	}
	return asset, storage.ExchangeAddress(asset), decimals, nil
}

type params map[string]string

func (p params) optional(key string) (string, bool) {
	v, ok := p[key]
	return v, ok && len(v) > 0
}

func (p params) required(key string) (string, error) {
	v, ok := p.optional(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return v, nil
}

// amount parses a required decimal amount. "max" is accepted when
// [allowMax] is set.
func (p params) amount(key string, decimals uint8, allowMax bool) (uint64, error) {
	v, err := p.required(key)
	if err != nil {
		return 0, err
	}
	if allowMax && v == maxAmount {
		return consts.MaxUint64, nil
	}
	amount, err := parseAmount(v, decimals)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrInvalidParam, key, err)
	}
	return amount, nil
}

// limit parses an optional bound, returning [fallback] when it is unset.
func (p params) limit(key string, decimals uint8, fallback uint64) (uint64, error) {
	if _, ok := p.optional(key); !ok {
		return fallback, nil
	}
	return p.amount(key, decimals, true)
}

func buildCreateAsset(_ context.Context, _ *runner, p params) (chain.Action, error) {
	name, err := p.required("name")
	if err != nil {
		return nil, err
	}
	symbol, err := p.required("symbol")
	if err != nil {
		return nil, err
	}
	decimals := uint64(consts.NativeDecimals)
	if s, ok := p.optional("decimals"); ok {
		decimals, err = strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w decimals: %w", ErrInvalidParam, err)
		}
	}
	metadata, _ := p.optional("metadata")
	return &actions.CreateAsset{
		Name:     []byte(name),
		Symbol:   []byte(symbol),
		Decimals: uint8(decimals),
		Metadata: []byte(metadata),
	}, nil
}

func buildMintAsset(ctx context.Context, r *runner, p params) (chain.Action, error) {
	asset, _, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	to, err := r.recipient(p, "to")
	if err != nil {
		return nil, err
	}
	value, err := p.amount("amount", decimals, false)
	if err != nil {
		return nil, err
	}
	return &actions.MintAsset{Asset: asset, To: to, Value: value}, nil
}

func buildTransferAsset(ctx context.Context, r *runner, p params) (chain.Action, error) {
	asset, _, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	to, err := r.recipient(p, "to")
	if err != nil {
		return nil, err
	}
	value, err := p.amount("amount", decimals, false)
	if err != nil {
		return nil, err
	}
	return &actions.TransferAsset{Asset: asset, To: to, Value: value}, nil
}

func buildApproveAsset(ctx context.Context, r *runner, p params) (chain.Action, error) {
	asset, _, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	spender, err := r.recipient(p, "spender")
	if err != nil {
		return nil, err
	}
	value, err := p.amount("amount", decimals, true)
	if err != nil {
		return nil, err
	}
	return &actions.ApproveAsset{Asset: asset, Spender: spender, Value: value}, nil
}

func buildTransferNative(_ context.Context, r *runner, p params) (chain.Action, error) {
	to, err := r.recipient(p, "to")
	if err != nil {
		return nil, err
	}
	value, err := p.amount("amount", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	return &actions.TransferNative{To: to, Value: value}, nil
}

func buildLaunchExchange(ctx context.Context, r *runner, p params) (chain.Action, error) {
	asset, _, _, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	return &actions.LaunchExchange{Asset: asset}, nil
}

func buildInitializeExchange(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	assetAmount, err := p.amount("asset_amount", decimals, false)
	if err != nil {
		return nil, err
	}
	value, err := p.amount("value", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	return &actions.InitializeExchange{Exchange: exchange, AssetAmount: assetAmount, Value: value}, nil
}

func buildNativeToAsset(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	value, err := p.amount("value", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	minOut, err := p.limit("min_out", decimals, 0)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	if s, ok := p.optional("recipient"); ok {
		recipient, err := r.address(s)
		if err != nil {
			return nil, err
		}
		return &actions.NativeToAssetPayment{
			Exchange:    exchange,
			Value:       value,
			MinAssetOut: minOut,
			Deadline:    deadline,
			Recipient:   recipient,
		}, nil
	}
	return &actions.NativeToAssetSwap{
		Exchange:    exchange,
		Value:       value,
		MinAssetOut: minOut,
		Deadline:    deadline,
	}, nil
}

func buildNativeToAssetOutput(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	assetOut, err := p.amount("amount", decimals, false)
	if err != nil {
		return nil, err
	}
	value, err := p.amount("value", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	return &actions.NativeToAssetSwapOutput{
		Exchange: exchange,
		AssetOut: assetOut,
		Value:    value,
		Deadline: deadline,
	}, nil
}

func buildDeposit(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, _, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	value, err := p.amount("value", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	return &actions.DepositAsSwap{Exchange: exchange, Value: value}, nil
}

func buildAssetToNative(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	assetIn, err := p.amount("amount", decimals, false)
	if err != nil {
		return nil, err
	}
	minOut, err := p.limit("min_out", consts.NativeDecimals, 0)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	if s, ok := p.optional("recipient"); ok {
		recipient, err := r.address(s)
		if err != nil {
			return nil, err
		}
		return &actions.AssetToNativePayment{
			Exchange:     exchange,
			AssetIn:      assetIn,
			MinNativeOut: minOut,
			Deadline:     deadline,
			Recipient:    recipient,
		}, nil
	}
	return &actions.AssetToNativeSwap{
		Exchange:     exchange,
		AssetIn:      assetIn,
		MinNativeOut: minOut,
		Deadline:     deadline,
	}, nil
}

func buildAssetToNativeOutput(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	nativeOut, err := p.amount("amount", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	maxIn, err := p.limit("max_in", decimals, consts.MaxUint64)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	return &actions.AssetToNativeSwapOutput{
		Exchange:   exchange,
		NativeOut:  nativeOut,
		MaxAssetIn: maxIn,
		Deadline:   deadline,
	}, nil
}

func buildAssetToAsset(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	s, err := p.required("to_asset")
	if err != nil {
		return nil, err
	}
	destination, err := r.asset(s)
	if err != nil {
		return nil, err
	}
	destinationDecimals, err := r.decimals(ctx, destination)
	if err != nil {
		return nil, err
	}
	assetIn, err := p.amount("amount", decimals, false)
	if err != nil {
		return nil, err
	}
	minOut, err := p.limit("min_out", destinationDecimals, 0)
	if err != nil {
		return nil, err
	}
	minNative, err := p.limit("min_native", consts.NativeDecimals, 0)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	if s, ok := p.optional("recipient"); ok {
		recipient, err := r.address(s)
		if err != nil {
			return nil, err
		}
		return &actions.AssetToAssetPayment{
			Exchange:         exchange,
			AssetIn:          assetIn,
			MinAssetOut:      minOut,
			MinNativeBought:  minNative,
			Deadline:         deadline,
			DestinationAsset: destination,
			Recipient:        recipient,
		}, nil
	}
	return &actions.AssetToAssetSwap{
		Exchange:         exchange,
		AssetIn:          assetIn,
		MinAssetOut:      minOut,
		MinNativeBought:  minNative,
		Deadline:         deadline,
		DestinationAsset: destination,
	}, nil
}

func buildInvest(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	value, err := p.amount("value", consts.NativeDecimals, false)
	if err != nil {
		return nil, err
	}
	minShares, err := p.limit("min_shares", 0, 0)
	if err != nil {
		return nil, err
	}
	maxAsset, err := p.limit("max_asset", decimals, 0)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	return &actions.InvestLiquidity{
		Exchange:   exchange,
		Value:      value,
		MinShares:  minShares,
		MaxAssetIn: maxAsset,
		Deadline:   deadline,
	}, nil
}

func buildDivest(ctx context.Context, r *runner, p params) (chain.Action, error) {
	_, exchange, decimals, err := r.pool(ctx, p)
	if err != nil {
		return nil, err
	}
	shares, err := p.amount("shares", 0, false)
	if err != nil {
		return nil, err
	}
	minNative, err := p.limit("min_native", consts.NativeDecimals, 0)
	if err != nil {
		return nil, err
	}
	minAsset, err := p.limit("min_asset", decimals, 0)
	if err != nil {
		return nil, err
	}
	deadline, err := r.deadline(p)
	if err != nil {
		return nil, err
	}
	return &actions.DivestLiquidity{
		Exchange:     exchange,
		Shares:       shares,
		MinNativeOut: minNative,
		MinAssetOut:  minAsset,
		Deadline:     deadline,
	}, nil
}

func (r *runner) recipient(p params, key string) (codec.Address, error) {
	s, err := p.required(key)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return r.address(s)
}
