// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/holiman/uint256"

// The fee retained by every pool is expressed as the integer ratio
// FeeNumerator/FeeDenominator (0.3%).
const (
	FeeNumerator   uint64 = 997
	FeeDenominator uint64 = 1000

	// BootstrapShares are minted to the provider that initializes a pool.
	BootstrapShares uint64 = 1000
)

// PriceGivenInput returns how much of the output reserve is bought by
// [inputAmount]. Rounds down in favor of the pool.
//
// output = in * 997 * rOut / (rIn * 1000 + in * 997)
func PriceGivenInput(inputAmount, inputReserve, outputReserve uint64) (uint64, error) {
	if inputAmount == 0 {
		return 0, ErrZeroInput
	}
	if inputReserve == 0 || outputReserve == 0 {
		return 0, ErrReservesZero
	}
	inputWithFee, err := mul(inputAmount, FeeNumerator)
	if err != nil {
		return 0, err
	}
	numerator, overflow := new(uint256.Int).MulOverflow(inputWithFee, u256(outputReserve))
	if overflow {
		return 0, ErrOverflow
	}
	denominator, err := mul(inputReserve, FeeDenominator)
	if err != nil {
		return 0, err
	}
	if _, overflow := denominator.AddOverflow(denominator, inputWithFee); overflow {
		return 0, ErrOverflow
	}
	return toUint64(numerator.Div(numerator, denominator))
}

// PriceGivenOutput returns how much must be sold to buy [outputAmount] of the
// output reserve. Rounds up in favor of the pool.
//
// input = rIn * out * 1000 / ((rOut - out) * 997) + 1
func PriceGivenOutput(outputAmount, inputReserve, outputReserve uint64) (uint64, error) {
	if outputAmount == 0 {
		return 0, ErrZeroInput
	}
	if inputReserve == 0 || outputReserve == 0 {
		return 0, ErrReservesZero
	}
	if outputAmount >= outputReserve {
		return 0, ErrInsufficientReserve
	}
	numerator, err := mul(inputReserve, outputAmount)
	if err != nil {
		return 0, err
	}
	if _, overflow := numerator.MulOverflow(numerator, u256(FeeDenominator)); overflow {
		return 0, ErrOverflow
	}
	denominator, err := mul(outputReserve-outputAmount, FeeNumerator)
	if err != nil {
		return 0, err
	}
	quotient, err := toUint64(numerator.Div(numerator, denominator))
	if err != nil {
		return 0, err
	}
	if quotient == ^uint64(0) {
		return 0, ErrOverflow
	}
	return quotient + 1, nil
}

// mulDiv returns floor(a * b / d) without overflowing the intermediate
// product.
func mulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrReservesZero
	}
	product, err := mul(a, b)
	if err != nil {
		return 0, err
	}
	return toUint64(product.Div(product, u256(d)))
}

func mul(a, b uint64) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(u256(a), u256(b))
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func u256(v uint64) *uint256.Int {
	return new(uint256.Int).SetUint64(v)
}

func toUint64(z *uint256.Int) (uint64, error) {
	if !z.IsUint64() {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}
