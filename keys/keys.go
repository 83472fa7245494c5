// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys lays out state keys. Every key ends with the number of chunks
// its value may occupy, so a write can be bounded without reading the value.
package keys

import (
	"encoding/binary"

	"github.com/ava-labs/ammvm/consts"
)

const ChunkSize = 64 // bytes

// New returns [prefix] + [parts...] + [chunks].
func New(prefix byte, chunks uint16, parts ...[]byte) []byte {
	size := 1 + consts.Uint16Len
	for _, p := range parts {
		size += len(p)
	}
	k := make([]byte, 1, size)
	k[0] = prefix
	for _, p := range parts {
		k = append(k, p...)
	}
	return binary.BigEndian.AppendUint16(k, chunks)
}

// Chunks returns the chunk budget encoded at the end of [key].
func Chunks(key []byte) (uint16, bool) {
	if len(key) < 1+consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16(key[len(key)-consts.Uint16Len:]), true
}

// ValueChunks returns the number of chunks [value] occupies.
func ValueChunks(value []byte) (uint16, bool) {
	n := (len(value) + ChunkSize - 1) / ChunkSize
	if n > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(n), true
}

// Fits reports whether [value] may be stored under [key].
func Fits(key []byte, value []byte) bool {
	budget, ok := Chunks(key)
	if !ok {
		return false
	}
	used, ok := ValueChunks(value)
	return ok && used <= budget
}
