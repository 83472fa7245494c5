// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

const AddressLen = 33

// Address identifies an account, an asset or an exchange.
//
// The first byte is the type of the identity and the remaining
// 32 bytes are its id.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// DeriveAddress hashes [seed] into an [Address] of type [typeID].
func DeriveAddress(typeID uint8, seed []byte) Address {
	return CreateAddress(typeID, ids.ID(hashing.ComputeHash256Array(seed)))
}

// ToAddress converts b into an [Address], failing when b is not exactly
// [AddressLen] bytes.
func ToAddress(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return EmptyAddress, ErrInvalidAddressLength
	}
	return Address(b), nil
}

// ParseAddress parses the hex form of an address, with or without
// the 0x prefix.
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return EmptyAddress, err
	}
	return ToAddress(b)
}

// Empty returns true when a is the null identity.
func (a Address) Empty() bool {
	return a == EmptyAddress
}

// TypeID returns the kind of identity a is.
func (a Address) TypeID() uint8 {
	return a[0]
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	result := make([]byte, len(a)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], a[:])
	return result, nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	addr, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
