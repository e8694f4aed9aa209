// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeHeaderBytes(version, maxTokenLength uint32, dictBytes, postBytes, mapBytes uint64) []byte {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[0:4], version)
	binary.BigEndian.PutUint32(buf[4:8], maxTokenLength)
	binary.BigEndian.PutUint64(buf[8:16], dictBytes)
	binary.BigEndian.PutUint64(buf[16:24], postBytes)
	binary.BigEndian.PutUint64(buf[24:32], mapBytes)
	return buf
}

func TestDecodeHeader(t *testing.T) {
	buf := makeHeaderBytes(SupportedVersion, 16, 32, 40, 8)
	h, err := decodeHeader(newView(buf))
	require.NoError(t, err)
	require.Equal(t, SupportedVersion, h.version)
	require.Equal(t, uint32(16), h.maxTokenLength)
	require.Equal(t, uint64(32), h.dictionaryBytes)
	require.Equal(t, uint64(40), h.postingBytes)
	require.Equal(t, uint64(8), h.mappingBytes)
}

func TestDecodeHeaderRejectsShortBuffer(t *testing.T) {
	_, err := decodeHeader(newView(make([]byte, headerSize-1)))
	require.ErrorIs(t, err, ErrCorruptIndex)
}

func TestDecodeHeaderRejectsUnsupportedVersion(t *testing.T) {
	buf := makeHeaderBytes(SupportedVersion+1, 16, 0, 0, 0)
	_, err := decodeHeader(newView(buf))
	require.ErrorIs(t, err, ErrCorruptIndex)
}

func TestDecodeLayoutRejectsSizeMismatch(t *testing.T) {
	header := makeHeaderBytes(SupportedVersion, 16, 32, 40, 8)
	data := append(header, make([]byte, 32+40+7)...) // mapping region one byte short
	_, err := decodeLayout(data)
	require.ErrorIs(t, err, ErrCorruptIndex)
}

func TestDecodeLayoutCarvesRegions(t *testing.T) {
	header := makeHeaderBytes(SupportedVersion, 16, 16, 8, 4)
	data := append(header, make([]byte, 16+8+4)...)
	for i := range data[headerSize:] {
		data[headerSize+i] = byte(i)
	}
	lay, err := decodeLayout(data)
	require.NoError(t, err)
	require.Equal(t, 16, lay.dictionary.len())
	require.Equal(t, 8, lay.posting.len())
	require.Equal(t, 4, lay.mapping.len())

	b, err := lay.posting.bytes(0, 1)
	require.NoError(t, err)
	require.Equal(t, byte(16), b[0])
}
