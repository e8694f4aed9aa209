// Portions Copyright 2019 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

// flatToSourceMap is the strictly non-decreasing array translating a
// flattened doc id to its source doc id (C4). Stored little-endian, the
// one deliberate byte-order asymmetry in the artifact (spec §6.1).
type flatToSourceMap struct {
	data         view
	numFlattened int
}

func newFlatToSourceMap(v view) (*flatToSourceMap, error) {
	if v.len()%4 != 0 {
		return nil, corruptf("flattened->source region of %d bytes is not a multiple of 4", v.len())
	}
	return &flatToSourceMap{data: v, numFlattened: v.len() / 4}, nil
}

func (m *flatToSourceMap) toSource(flat uint32) (uint32, error) {
	if int(flat) >= m.numFlattened {
		return 0, corruptf("flattened doc id %d out of range [0, %d)", flat, m.numFlattened)
	}
	v, err := m.data.u32LE(int(flat) * 4)
	if err != nil {
		return 0, err
	}
	return v, nil
}
