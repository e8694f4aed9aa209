// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeMappingRegion(ids []uint32) []byte {
	buf := make([]byte, len(ids)*4)
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:], id)
	}
	return buf
}

func TestFlatToSourceMap(t *testing.T) {
	m, err := newFlatToSourceMap(newView(makeMappingRegion([]uint32{0, 0, 0, 1, 1, 2})))
	require.NoError(t, err)
	require.Equal(t, 6, m.numFlattened)

	for flat, want := range []uint32{0, 0, 0, 1, 1, 2} {
		got, err := m.toSource(uint32(flat))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFlatToSourceMapRejectsOutOfRange(t *testing.T) {
	m, err := newFlatToSourceMap(newView(makeMappingRegion([]uint32{0, 1})))
	require.NoError(t, err)

	_, err = m.toSource(2)
	require.ErrorIs(t, err, ErrCorruptIndex)
}

func TestNewFlatToSourceMapRejectsBadLength(t *testing.T) {
	_, err := newFlatToSourceMap(newView(make([]byte, 6)))
	require.ErrorIs(t, err, ErrCorruptIndex)
}
