// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewReads(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x02, 0xAA, 0xBB, 0xCC, 0xDD}
	v := newView(data)

	require.Equal(t, 8, v.len())

	u32, err := v.u32BE(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x00000102), u32)

	u64, err := v.u64BE(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x00000102AABBCCDD), u64)

	le, err := v.u32LE(4)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDDCCBBAA), le)
}

func TestViewBoundsChecking(t *testing.T) {
	v := newView([]byte{1, 2, 3, 4})

	_, err := v.bytes(2, 4)
	require.ErrorIs(t, err, ErrCorruptIndex)

	_, err = v.bytes(-1, 1)
	require.ErrorIs(t, err, ErrCorruptIndex)

	_, err = v.u32BE(1)
	require.ErrorIs(t, err, ErrCorruptIndex)

	b, err := v.bytes(1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, b)
}

func TestViewSlice(t *testing.T) {
	v := newView([]byte{1, 2, 3, 4, 5})
	sub, err := v.slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, sub.len())
	b, err := sub.bytes(0, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3, 4}, b)
}
