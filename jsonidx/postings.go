// Portions Copyright 2019 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import "github.com/outcaste-io/sroar"

// postingStore maps a dictionary id to its immutable bitmap of flattened
// doc ids (C3). The region is laid out as a big-endian u64 offset table of
// numTokens+1 entries (offsets relative to the start of the bitmap area
// that follows the table) followed by the concatenated sroar-serialized
// bitmaps; offsets[i]..
// offsets[i+1] bounds posting i. An empty span yields an empty bitmap.
type postingStore struct {
	data    view
	offsets view
	numIds  int
}

func newPostingStore(v view, numIds int) (*postingStore, error) {
	tableBytes := 8 * (numIds + 1)
	offsets, err := v.slice(0, tableBytes)
	if err != nil {
		return nil, corruptf("posting offset table: %v", err)
	}
	data, err := v.slice(tableBytes, v.len()-tableBytes)
	if err != nil {
		return nil, err
	}
	return &postingStore{data: data, offsets: offsets, numIds: numIds}, nil
}

func (p *postingStore) span(id uint32) (view, error) {
	if int(id) >= p.numIds {
		return view{}, corruptf("dictionary id %d out of range [0, %d)", id, p.numIds)
	}
	start, err := p.offsets.u64BE(int(id) * 8)
	if err != nil {
		return view{}, err
	}
	end, err := p.offsets.u64BE(int(id+1) * 8)
	if err != nil {
		return view{}, err
	}
	if end < start || int(end) > p.data.len() {
		return view{}, corruptf("posting %d has invalid span [%d, %d) over region of %d bytes",
			id, start, end, p.data.len())
	}
	return p.data.slice(int(start), int(end-start))
}

// get returns a read-only bitmap view over the posting region -- no copy.
// Callers that need to fold the result into an accumulator they mutate
// must Clone() it first (spec's "conversion to a mutable bitmap is
// explicit and allocates a copy").
func (p *postingStore) get(id uint32) (*sroar.Bitmap, error) {
	span, err := p.span(id)
	if err != nil {
		return nil, err
	}
	if span.len() == 0 {
		return sroar.NewBitmap(), nil
	}
	return sroar.FromBuffer(span.data), nil
}
