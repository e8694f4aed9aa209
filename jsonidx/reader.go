// Portions Copyright 2017-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

// Package jsonidx implements an immutable, memory-mapped JSON inverted
// index reader. It resolves json_match(column, filter) predicates --
// equality, set membership, null-checks, boolean combinations, and
// indexed array-element navigation -- against a binary artifact built
// offline, down to a bitmap of matching source doc ids.
//
// The reader never mutates, never does I/O, and never blocks: it is
// handed a read-only byte region (already mapped by the caller) and
// answers queries by walking a sorted dictionary and a table of
// posting bitmaps.
package jsonidx

import (
	"github.com/golang/glog"
	"github.com/outcaste-io/jsonidx/x"
	"github.com/outcaste-io/sroar"
)

// core bundles the decoded views a query needs (C2-C4), plus the derived
// source doc count the root-level complement (spec §4.8, §4.9) is taken
// against.
type core struct {
	dict          *dictionary
	postings      *postingStore
	mapping       *flatToSourceMap
	numSourceDocs uint32
}

// Reader is the facade (C9): a single entry point,
// MatchingDocIDs/MatchingDocIDsContext, over a once-constructed, logically
// immutable view of the artifact. It holds no heap bitmaps of its own;
// every query allocates transient ones.
//
// A Reader is safe for concurrent use: all query state lives on the
// stack or is query-local (spec §5).
type Reader struct {
	c *core
}

// Open decodes the artifact header (C5) and carves the dictionary,
// posting, and flattened->source regions out of data. data is borrowed:
// the Reader must not outlive the region backing it, and Open performs no
// copy of it.
func Open(data []byte) (*Reader, error) {
	lay, err := decodeLayout(data)
	if err != nil {
		glog.Warningf("jsonidx: failed to decode artifact layout: %v", err)
		return nil, err
	}

	dict, err := newDictionary(lay.dictionary, lay.header.maxTokenLength)
	if err != nil {
		return nil, err
	}

	postings, err := newPostingStore(lay.posting, dict.count)
	if err != nil {
		return nil, err
	}

	mapping, err := newFlatToSourceMap(lay.mapping)
	if err != nil {
		return nil, err
	}

	x.AssertTrue(postings.numIds == dict.count)

	var numSourceDocs uint32
	if mapping.numFlattened > 0 {
		// The open question in spec §9: "not null" membership for IS_NULL's
		// complement is only sound if flattening emits at least one entry
		// per source doc. We take that as the builder's contract (matching
		// outserv's own assumption that every edge produces a posting) and
		// derive numSourceDocs from the map's last (largest, since
		// non-decreasing) entry rather than requiring a separate header
		// field for it.
		last, err := mapping.toSource(uint32(mapping.numFlattened - 1))
		if err != nil {
			return nil, err
		}
		numSourceDocs = last + 1
	}

	return &Reader{c: &core{
		dict:          dict,
		postings:      postings,
		mapping:       mapping,
		numSourceDocs: numSourceDocs,
	}}, nil
}

// Close releases the Reader's internal references. It does not free data;
// the caller owns that region's lifetime (spec §4.9).
func (r *Reader) Close() {
	r.c = nil
}

// NumSourceDocs returns the number of source documents the artifact
// describes, as derived from the flattened->source map.
func (r *Reader) NumSourceDocs() uint32 {
	if r.c == nil {
		return 0
	}
	return r.c.numSourceDocs
}

// MatchingDocIDs resolves filter to a bitmap of matching source doc ids
// (spec §4.1). It is equivalent to MatchingDocIDsContext with a nil
// cancellation check.
func (r *Reader) MatchingDocIDs(filter FilterNode) (*sroar.Bitmap, error) {
	return r.MatchingDocIDsContext(filter, nil)
}

// MatchingDocIDsContext is MatchingDocIDs with a caller-supplied
// cancellation check, polled between AND/OR fold steps (spec §5).
func (r *Reader) MatchingDocIDsContext(filter FilterNode, cancel CancelFunc) (*sroar.Bitmap, error) {
	if r.c == nil {
		return nil, corruptf("reader is closed")
	}
	c := r.c
	glog.V(2).Infof("jsonidx: evaluating filter kind=%v", filter.Kind)

	if filter.Kind == KindPredicate && filter.Predicate.exclusive() {
		flat, err := evalPredicate(c, filter.Predicate.asInclusive())
		if err != nil {
			return nil, err
		}
		present, err := projectToSource(c, flat)
		if err != nil {
			return nil, err
		}
		return complementSourceIDs(present, c.numSourceDocs), nil
	}

	flat, err := evaluate(c, filter, cancel)
	if err != nil {
		return nil, err
	}
	return projectToSource(c, flat)
}
