// Portions Copyright 2017-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import (
	"bytes"

	"github.com/outcaste-io/jsonidx/x"
)

// dictionary is the sorted, fixed-width-padded set of flattened-key and
// key-value tokens (C2). Record i occupies data[i*width : (i+1)*width],
// right-padded with 0x00 (the key/value separator's own byte, which never
// appears inside a user key segment). Trimming strips every trailing 0x00,
// so a key-value token with an empty value ("k\x00") reads back as its
// bare key token ("k").
type dictionary struct {
	data  view
	width int
	count int
}

func newDictionary(v view, maxTokenLength uint32) (*dictionary, error) {
	width := int(maxTokenLength)
	if width <= 0 {
		if v.len() == 0 {
			return &dictionary{data: v, width: 1, count: 0}, nil
		}
		return nil, corruptf("maxTokenLength is 0 but dictionary region has %d bytes", v.len())
	}
	if v.len()%width != 0 {
		return nil, corruptf("dictionary region of %d bytes is not a multiple of token width %d", v.len(), width)
	}
	return &dictionary{data: v, width: width, count: v.len() / width}, nil
}

// record returns the raw (still zero-padded) width-byte slot for id.
func (d *dictionary) record(id int) ([]byte, error) {
	return d.data.bytes(id*d.width, d.width)
}

// token returns the trimmed token bytes stored at id.
func (d *dictionary) token(id int) ([]byte, error) {
	r, err := d.record(id)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(r, "\x00"), nil
}

// indexOf performs a binary search for token, comparing against the
// zero-padded width-byte records directly: since 0x00 is the smallest byte
// value, right-padding with it preserves the lexicographic order of the
// unpadded tokens. Tokens that differ only in trailing 0x00 bytes pad to
// the same record and are not told apart.
func (d *dictionary) indexOf(token []byte) (id uint32, ok bool) {
	if len(token) > d.width {
		return 0, false
	}
	padded := make([]byte, d.width)
	n := copy(padded, token)
	x.AssertTruef(n == len(token), "short copy into padded token: %d != %d", n, len(token))

	lo, hi := 0, d.count
	for lo < hi {
		mid := lo + (hi-lo)/2
		rec, err := d.record(mid)
		if err != nil {
			return 0, false
		}
		switch bytes.Compare(rec, padded) {
		case 0:
			return uint32(mid), true
		case -1:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}
