// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package e2e_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/tests/fixture"
	"github.com/ava-labs/ammvm/vm"

	he2e "github.com/ava-labs/ammvm/tests/e2e"
	ginkgo "github.com/onsi/ginkgo/v2"
)

const unit = 1_000_000_000

var (
	alice = fixture.Account("alice")
	bob   = fixture.Account("bob")
	carol = fixture.Account("carol")
)

func deadline() int64 {
	return time.Now().Unix() + 60
}

func execute(require *require.Assertions, env *fixture.Environment, actor codec.Address, action chain.Action) codec.Typed {
	result, err := env.VM().Execute(context.Background(), actor, action)
	require.NoError(err)
	require.True(result.Success)
	return result.Output
}

// launchPool creates [symbol], mints it to alice and seeds its exchange.
func launchPool(
	require *require.Assertions,
	env *fixture.Environment,
	symbol string,
	native uint64,
	assetAmount uint64,
) (codec.Address, codec.Address) {
	out := execute(require, env, alice, &actions.CreateAsset{
		Name:     []byte(symbol + " coin"),
		Symbol:   []byte(symbol),
		Decimals: 9,
	})
	asset := out.(*actions.CreateAssetResult).Asset
	execute(require, env, alice, &actions.MintAsset{Asset: asset, To: alice, Value: 1_000 * unit})
	out = execute(require, env, alice, &actions.LaunchExchange{Asset: asset})
	exchange := out.(*actions.LaunchExchangeResult).Exchange
	execute(require, env, alice, &actions.ApproveAsset{Asset: asset, Spender: exchange, Value: consts.MaxUint64})
	execute(require, env, alice, &actions.InitializeExchange{Exchange: exchange, AssetAmount: assetAmount, Value: native})
	return asset, exchange
}

var _ = he2e.RegisterTest("Launch and trade through an exchange", func(t ginkgo.FullGinkgoTInterface, env *fixture.Environment) error {
	require := require.New(t)
	ctx := context.Background()
	cli := env.Client()

	asset, exchange := launchPool(require, env, "LNCH", 10*unit, 20*unit)

	addr, err := cli.TokenToExchange(ctx, asset)
	require.NoError(err)
	require.Equal(exchange, addr)
	addr, err = cli.ExchangeToToken(ctx, exchange)
	require.NoError(err)
	require.Equal(asset, addr)
	count, err := cli.ExchangeCount(ctx)
	require.NoError(err)
	require.Positive(count)

	quote, err := cli.Quote(ctx, exchange, vm.NativeToAssetInput, unit)
	require.NoError(err)
	expected, err := pricing.PriceGivenInput(unit, 10*unit, 20*unit)
	require.NoError(err)
	require.Equal(expected, quote)

	before, err := cli.Balance(ctx, bob)
	require.NoError(err)
	out := execute(require, env, bob, &actions.NativeToAssetSwap{
		Exchange:    exchange,
		Value:       unit,
		MinAssetOut: quote,
		Deadline:    deadline(),
	})
	require.Equal(quote, out.(*actions.NativeToAssetResult).AssetOut)

	balance, err := cli.AssetBalance(ctx, asset, bob)
	require.NoError(err)
	require.Equal(quote, balance)
	after, err := cli.Balance(ctx, bob)
	require.NoError(err)
	require.Equal(before-unit, after)

	state, err := cli.GetExchange(ctx, exchange)
	require.NoError(err)
	require.True(state.Initialized)
	require.Equal(uint64(11*unit), state.ReserveNative)
	require.Equal(20*unit-quote, state.ReserveAsset)
	require.Equal(pricing.BootstrapShares, state.TotalShares)
	return nil
}, "swap")

var _ = he2e.RegisterTest("Swap between two assets", func(t ginkgo.FullGinkgoTInterface, env *fixture.Environment) error {
	require := require.New(t)
	ctx := context.Background()
	cli := env.Client()

	source, sourceExchange := launchPool(require, env, "SRC", 10*unit, 10*unit)
	destination, _ := launchPool(require, env, "DST", 10*unit, 40*unit)

	execute(require, env, alice, &actions.TransferAsset{Asset: source, To: carol, Value: 5 * unit})
	execute(require, env, carol, &actions.ApproveAsset{Asset: source, Spender: sourceExchange, Value: 5 * unit})

	nativeBefore, err := cli.Balance(ctx, carol)
	require.NoError(err)
	out := execute(require, env, carol, &actions.AssetToAssetSwap{
		Exchange:         sourceExchange,
		AssetIn:          unit,
		MinAssetOut:      1,
		MinNativeBought:  1,
		Deadline:         deadline(),
		DestinationAsset: destination,
	})
	result := out.(*actions.AssetToAssetResult)
	require.Positive(result.AssetOut)

	balance, err := cli.AssetBalance(ctx, destination, carol)
	require.NoError(err)
	require.Equal(result.AssetOut, balance)
	balance, err = cli.AssetBalance(ctx, source, carol)
	require.NoError(err)
	require.Equal(uint64(4*unit), balance)
	allowance, err := cli.Allowance(ctx, source, carol, sourceExchange)
	require.NoError(err)
	require.Equal(uint64(4*unit), allowance)
	nativeAfter, err := cli.Balance(ctx, carol)
	require.NoError(err)
	require.Equal(nativeBefore, nativeAfter)
	return nil
}, "swap")

var _ = he2e.RegisterTest("Provide and withdraw liquidity", func(t ginkgo.FullGinkgoTInterface, env *fixture.Environment) error {
	require := require.New(t)
	ctx := context.Background()
	cli := env.Client()

	asset, exchange := launchPool(require, env, "LIQ", 10*unit, 10*unit)
	execute(require, env, alice, &actions.TransferAsset{Asset: asset, To: bob, Value: 10 * unit})
	execute(require, env, bob, &actions.ApproveAsset{Asset: asset, Spender: exchange, Value: consts.MaxUint64})

	out := execute(require, env, bob, &actions.InvestLiquidity{
		Exchange: exchange,
		Value:    5 * unit,
		Deadline: deadline(),
	})
	invested := out.(*actions.InvestLiquidityResult)
	require.Equal(uint64(500), invested.SharesPurchased)

	shares, err := cli.Shares(ctx, exchange, bob)
	require.NoError(err)
	require.Equal(invested.SharesPurchased, shares)

	out = execute(require, env, bob, &actions.DivestLiquidity{
		Exchange: exchange,
		Shares:   shares,
		Deadline: deadline(),
	})
	divested := out.(*actions.DivestLiquidityResult)
	require.Equal(uint64(5*unit), divested.NativeOut)
	require.LessOrEqual(divested.AssetOut, invested.AssetIn)

	shares, err = cli.Shares(ctx, exchange, bob)
	require.NoError(err)
	require.Zero(shares)
	state, err := cli.GetExchange(ctx, exchange)
	require.NoError(err)
	require.Equal(pricing.BootstrapShares, state.TotalShares)
	return nil
}, "liquidity")

var _ = he2e.RegisterTest("Failed calls are indexed without changes", func(t ginkgo.FullGinkgoTInterface, env *fixture.Environment) error {
	require := require.New(t)
	ctx := context.Background()
	cli := env.Client()

	_, exchange := launchPool(require, env, "EXP", 10*unit, 10*unit)
	before, err := cli.GetExchange(ctx, exchange)
	require.NoError(err)

	result, err := env.VM().Execute(ctx, bob, &actions.NativeToAssetSwap{
		Exchange: exchange,
		Value:    unit,
		Deadline: 1,
	})
	require.ErrorIs(err, actions.ErrExpired)
	require.False(result.Success)

	after, err := cli.GetExchange(ctx, exchange)
	require.NoError(err)
	require.Equal(before, after)

	count := env.VM().ResultCount()
	results, next, err := cli.Results(ctx, count-1, 1)
	require.NoError(err)
	require.Len(results, 1)
	require.Equal(count, next)
	var indexed struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(json.Unmarshal(results[0], &indexed))
	require.False(indexed.Success)
	require.Contains(indexed.Error, actions.ErrExpired.Error())
	return nil
}, "index")
