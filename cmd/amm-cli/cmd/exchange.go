// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/storage"
)

func newExchangeCmd(e *engine) *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <asset>",
		Short: "Print the reserves of the exchange of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			asset, err := codec.ParseAddress(args[0])
			if err != nil {
				return err
			}
			if err := e.open(ctx, nil); err != nil {
				return err
			}
			info, exists, err := e.vm.AssetInfo(ctx, asset)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: %s", ErrUnknownAsset, args[0])
			}
			exchange, exists, err := e.vm.GetExchange(ctx, storage.ExchangeAddress(asset))
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: %s", ErrExchangeNotFound, info.Symbol)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "exchange:      %s\n", exchange.Exchange)
			fmt.Fprintf(out, "asset:         %s (%s)\n", exchange.Asset, info.Symbol)
			fmt.Fprintf(out, "initialized:   %t\n", exchange.Initialized)
			fmt.Fprintf(out, "native:        %s %s\n", formatAmount(exchange.ReserveNative, consts.NativeDecimals), consts.NativeSymbol)
			fmt.Fprintf(out, "asset reserve: %s %s\n", formatAmount(exchange.ReserveAsset, info.Decimals), info.Symbol)
			fmt.Fprintf(out, "total shares:  %d\n", exchange.TotalShares)
			return nil
		},
	}
}
