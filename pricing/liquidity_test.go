// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/consts"
)

func TestInvestment(t *testing.T) {
	require := require.New(t)

	// 30% of the native reserve buys 30% of the shares
	shares, err := InvestmentShares(BootstrapShares, 3*one/10, one)
	require.NoError(err)
	require.Equal(uint64(300), shares)

	required, err := AssetRequired(2*one, 3*one/10, one)
	require.NoError(err)
	require.Equal(uint64(600_000_001), required)

	shares, err = InvestmentShares(BootstrapShares, 999, one)
	require.NoError(err)
	require.Zero(shares)

	_, err = InvestmentShares(BootstrapShares, 1, 0)
	require.ErrorIs(err, ErrReservesZero)

	_, err = AssetRequired(consts.MaxUint64, consts.MaxUint64, consts.MaxUint64)
	require.ErrorIs(err, ErrOverflow)
}

func TestDivestAmounts(t *testing.T) {
	require := require.New(t)

	nativeOut, assetOut, err := DivestAmounts(1_000, 3_333, 333, 1_000)
	require.NoError(err)
	require.Equal(uint64(333), nativeOut)
	require.Equal(uint64(1_109), assetOut)

	nativeOut, assetOut, err = DivestAmounts(1_000, 3_333, 1_000, 1_000)
	require.NoError(err)
	require.Equal(uint64(1_000), nativeOut)
	require.Equal(uint64(3_333), assetOut)

	_, _, err = DivestAmounts(1, 1, 2, 1)
	require.ErrorIs(err, ErrExcessiveShares)

	_, _, err = DivestAmounts(1, 1, 0, 0)
	require.ErrorIs(err, ErrReservesZero)
}
