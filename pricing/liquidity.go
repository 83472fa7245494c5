// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import smath "github.com/ava-labs/avalanchego/utils/math"

// InvestmentShares returns the shares minted for depositing [nativeAmount]
// into a pool holding [reserveNative] before the deposit.
func InvestmentShares(totalShares, nativeAmount, reserveNative uint64) (uint64, error) {
	return mulDiv(totalShares, nativeAmount, reserveNative)
}

// AssetRequired returns the asset a provider depositing [nativeAmount] must
// contribute. Rounds up in favor of the pool.
func AssetRequired(reserveAsset, nativeAmount, reserveNative uint64) (uint64, error) {
	required, err := mulDiv(reserveAsset, nativeAmount, reserveNative)
	if err != nil {
		return 0, err
	}
	required, err = smath.Add(required, 1)
	if err != nil {
		return 0, ErrOverflow
	}
	return required, nil
}

// DivestAmounts returns the native and asset paid out for burning [shares].
// Both round down in favor of the pool.
func DivestAmounts(reserveNative, reserveAsset, shares, totalShares uint64) (uint64, uint64, error) {
	if shares > totalShares {
		return 0, 0, ErrExcessiveShares
	}
	nativeOut, err := mulDiv(reserveNative, shares, totalShares)
	if err != nil {
		return 0, 0, err
	}
	assetOut, err := mulDiv(reserveAsset, shares, totalShares)
	if err != nil {
		return 0, 0, err
	}
	return nativeOut, assetOut, nil
}
