// Portions Copyright 2017-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

const (
	// SupportedVersion is the only on-disk artifact version this reader
	// understands, the way x.MagicVersion gates outserv's posting
	// directory format.
	SupportedVersion uint32 = 1

	headerSize = 32
)

// header mirrors badger/table's header struct: a handful of fixed-width
// fields, decoded by decodeHeader straight off the front of the artifact with no
// intermediate allocation.
type header struct {
	version         uint32
	maxTokenLength  uint32
	dictionaryBytes uint64
	postingBytes    uint64
	mappingBytes    uint64
}

func decodeHeader(v view) (header, error) {
	if v.len() < headerSize {
		return header{}, corruptf("artifact of %d bytes is smaller than the %d byte header", v.len(), headerSize)
	}
	var h header
	var err error
	if h.version, err = v.u32BE(0x00); err != nil {
		return header{}, err
	}
	if h.version != SupportedVersion {
		return header{}, corruptf("unsupported version %d, expected %d", h.version, SupportedVersion)
	}
	if h.maxTokenLength, err = v.u32BE(0x04); err != nil {
		return header{}, err
	}
	if h.dictionaryBytes, err = v.u64BE(0x08); err != nil {
		return header{}, err
	}
	if h.postingBytes, err = v.u64BE(0x10); err != nil {
		return header{}, err
	}
	if h.mappingBytes, err = v.u64BE(0x18); err != nil {
		return header{}, err
	}
	return h, nil
}

// layout carves the three regions (C2-C4) out of the artifact, past the
// fixed header, validating that their declared sizes exactly cover the
// remainder of the buffer.
type layout struct {
	header     header
	dictionary view
	posting    view
	mapping    view
}

func decodeLayout(data []byte) (layout, error) {
	v := newView(data)
	h, err := decodeHeader(v)
	if err != nil {
		return layout{}, err
	}

	want := h.dictionaryBytes + h.postingBytes + h.mappingBytes
	got := uint64(v.len() - headerSize)
	if want != got {
		return layout{}, corruptf("region sizes sum to %d, expected %d (artifact size %d minus header)",
			want, got, v.len())
	}

	off := headerSize
	dict, err := v.slice(off, int(h.dictionaryBytes))
	if err != nil {
		return layout{}, err
	}
	off += int(h.dictionaryBytes)

	post, err := v.slice(off, int(h.postingBytes))
	if err != nil {
		return layout{}, err
	}
	off += int(h.postingBytes)

	mapping, err := v.slice(off, int(h.mappingBytes))
	if err != nil {
		return layout{}, err
	}

	return layout{header: h, dictionary: dict, posting: post, mapping: mapping}, nil
}
