// Portions Copyright 2017-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import "encoding/binary"

// view is a typed, bounds-checked window onto a borrowed, read-only byte
// region -- the mapped artifact, or a sub-slice of it carved out by the
// header decoder. It never copies and never allocates; every accessor
// returns jsonidx's CorruptIndex sentinel instead of panicking when an
// offset escapes the region, since the region's contents are
// artifact-controlled rather than programmer-controlled.
type view struct {
	data []byte
}

func newView(data []byte) view {
	return view{data: data}
}

func (v view) len() int {
	return len(v.data)
}

func (v view) bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return nil, corruptf("offset %d length %d escapes region of size %d", off, n, len(v.data))
	}
	return v.data[off : off+n], nil
}

// slice returns the byte range [off, off+n) as a sub-view, for carving the
// dictionary/posting/mapping regions out of the full artifact.
func (v view) slice(off, n int) (view, error) {
	b, err := v.bytes(off, n)
	if err != nil {
		return view{}, err
	}
	return view{data: b}, nil
}

func (v view) u32BE(off int) (uint32, error) {
	b, err := v.bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (v view) u64BE(off int) (uint64, error) {
	b, err := v.bytes(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// u32LE reads a little-endian u32. Only the flattened->source mapping
// region (C4) uses little-endian encoding -- a deliberate asymmetry from
// the rest of the big-endian artifact, matching the builder's writer.
func (v view) u32LE(off int) (uint32, error) {
	b, err := v.bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
