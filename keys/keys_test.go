// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	require := require.New(t)

	k := New(7, 2, []byte("ab"), []byte("c"))
	require.Equal([]byte{7, 'a', 'b', 'c', 0, 2}, k)
	chunks, ok := Chunks(k)
	require.True(ok)
	require.Equal(uint16(2), chunks)

	require.Equal([]byte{3, 0, 1}, New(3, 1))

	_, ok = Chunks([]byte{1, 2})
	require.False(ok)
}

func TestFits(t *testing.T) {
	tests := []struct {
		name   string
		chunks uint16
		value  []byte
		fits   bool
	}{
		{"empty", 0, nil, true},
		{"one chunk", 1, bytes.Repeat([]byte{1}, ChunkSize), true},
		{"spills into a second chunk", 1, bytes.Repeat([]byte{1}, ChunkSize+1), false},
		{"two chunks", 2, bytes.Repeat([]byte{1}, ChunkSize+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.fits, Fits(New(1, tt.chunks), tt.value))
		})
	}
	require.False(t, Fits([]byte{1}, nil))
}
