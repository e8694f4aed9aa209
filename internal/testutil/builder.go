// Portions Copyright 2017-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

// Package testutil builds in-memory jsonidx artifacts from plain decoded
// JSON values (the shapes encoding/json.Unmarshal produces into
// interface{}), the way outserv/cmd/boot's mapper turns source records into
// sorted, offset-addressed on-disk entries -- except entirely in memory,
// and only for the handful of fields a reader test needs.
//
// This is a test fixture builder, not the offline index builder the
// package's contract assumes exists: it makes a reasonable, internally
// consistent choice about how a document flattens (arrays fork one
// flattened row per element via a full cross join against sibling fields,
// mirroring how Pinot's own json_index flattens nested arrays), but the
// wire format it emits is exactly the one jsonidx.Open decodes.
package testutil

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/outcaste-io/jsonidx/jsonidx"
	"github.com/outcaste-io/sroar"
)

const indexMarker = ".$index="

// Builder accumulates source documents and serializes them into a
// jsonidx-compatible artifact.
type Builder struct {
	docs []interface{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddDoc appends one source document (a map[string]interface{}, as
// produced by encoding/json.Unmarshal into interface{}) and returns its
// source doc id.
func (b *Builder) AddDoc(doc interface{}) int {
	b.docs = append(b.docs, doc)
	return len(b.docs) - 1
}

// row is one flattened expansion of a document: the set of (key path,
// canonical value) pairs reachable under a single, fully-resolved
// combination of array-index choices, plus the set of bare key paths
// (leaves, their array-index constraint markers, and container paths)
// that "exist" in that combination.
type row struct {
	leaves map[string]string
	exists map[string]bool
}

func newRow() row {
	return row{leaves: map[string]string{}, exists: map[string]bool{}}
}

func mergeRows(a, b row) row {
	r := newRow()
	for k, v := range a.leaves {
		r.leaves[k] = v
	}
	for k, v := range b.leaves {
		r.leaves[k] = v
	}
	for k := range a.exists {
		r.exists[k] = true
	}
	for k := range b.exists {
		r.exists[k] = true
	}
	return r
}

// crossJoin merges every row of a with every row of b -- the step that
// turns sibling fields, each possibly forking over an array of their own,
// into the full set of flattened rows for their shared parent.
func crossJoin(a, b []row) []row {
	if len(a) == 0 || len(b) == 0 {
		if len(b) != 0 {
			return b
		}
		return a
	}
	out := make([]row, 0, len(a)*len(b))
	for _, ra := range a {
		for _, rb := range b {
			out = append(out, mergeRows(ra, rb))
		}
	}
	return out
}

// flattenNode recursively flattens node (found at prefix) into the rows it
// contributes. Objects cross-join their fields' rows together; arrays fork
// one branch of rows per element, each tagged with the array's own
// existence so IS_NOT_NULL(path) and the "<path>.$index=<n>" constraint
// tokens the key path resolver emits both have somewhere to post to.
func flattenNode(node interface{}, prefix string) []row {
	switch t := node.(type) {
	case map[string]interface{}:
		rows := []row{newRow()}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childPath := k
			if prefix != "" {
				childPath = prefix + "." + k
			}
			rows = crossJoin(rows, flattenNode(t[k], childPath))
		}
		if prefix != "" {
			for i := range rows {
				rows[i].exists[prefix] = true
			}
		}
		return rows

	case []interface{}:
		if len(t) == 0 {
			r := newRow()
			if prefix != "" {
				r.exists[prefix] = true
			}
			return []row{r}
		}
		var rows []row
		for i, elem := range t {
			childPath := fmt.Sprintf("%s%s%d", prefix, indexMarker, i)

			var childRows []row
			switch elem.(type) {
			case map[string]interface{}, []interface{}:
				// A container element's own fields/indices already carry
				// their full paths; recurse as usual.
				childRows = flattenNode(elem, childPath)
			default:
				// A scalar array element's value token belongs to the
				// array's own (unindexed) key -- resolveKeyPath strips the
				// index out of the residual before building the EQ/IN
				// value token, so "tags[0]" == "x" must be found under
				// "tags", not "tags.$index=0". The indexed path still gets
				// its own existence marker below, for the constraint token.
				r := newRow()
				val, isNull := canonicalScalar(elem)
				if !isNull {
					r.leaves[prefix] = val
				}
				childRows = []row{r}
			}

			for j := range childRows {
				childRows[j].exists[childPath] = true
				if prefix != "" {
					childRows[j].exists[prefix] = true
				}
			}
			rows = append(rows, childRows...)
		}
		return rows

	default:
		r := newRow()
		val, isNull := canonicalScalar(t)
		if !isNull {
			r.leaves[prefix] = val
			r.exists[prefix] = true
		}
		return []row{r}
	}
}

func addPosting(postings map[string]map[uint32]bool, token string, id uint32) {
	ids, ok := postings[token]
	if !ok {
		ids = map[uint32]bool{}
		postings[token] = ids
	}
	ids[id] = true
}

// Build serializes the accumulated documents into a jsonidx artifact:
// header, sorted zero-padded dictionary, offset-addressed posting bitmaps,
// and a little-endian flattened->source array, in exactly the layout
// jsonidx.Open expects.
func (b *Builder) Build() ([]byte, error) {
	postings := map[string]map[uint32]bool{}
	var flatToSrc []uint32
	var nextFlatID uint32

	for srcID, doc := range b.docs {
		for _, r := range flattenNode(doc, "") {
			id := nextFlatID
			nextFlatID++
			flatToSrc = append(flatToSrc, uint32(srcID))

			for path, val := range r.leaves {
				addPosting(postings, path+"\x00"+val, id)
			}
			for path := range r.exists {
				addPosting(postings, path, id)
			}
		}
	}

	tokens := make([]string, 0, len(postings))
	for tok := range postings {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	width := 1
	for _, tok := range tokens {
		if len(tok) > width {
			width = len(tok)
		}
	}

	dictBuf := make([]byte, len(tokens)*width)
	for i, tok := range tokens {
		copy(dictBuf[i*width:], tok)
	}

	bitmaps := make([][]byte, len(tokens))
	for i, tok := range tokens {
		ids := make([]uint64, 0, len(postings[tok]))
		for id := range postings[tok] {
			ids = append(ids, uint64(id))
		}
		sort.Slice(ids, func(a, c int) bool { return ids[a] < ids[c] })

		bm := sroar.NewBitmap()
		for _, id := range ids {
			bm.Set(id)
		}
		bitmaps[i] = bm.ToBuffer()
	}

	offsets := make([]uint64, len(tokens)+1)
	var cur uint64
	for i, bm := range bitmaps {
		offsets[i] = cur
		cur += uint64(len(bm))
	}
	offsets[len(tokens)] = cur

	postingRegion := make([]byte, 8*(len(tokens)+1), int(cur)+8*(len(tokens)+1))
	for i, off := range offsets {
		binary.BigEndian.PutUint64(postingRegion[i*8:], off)
	}
	for _, bm := range bitmaps {
		postingRegion = append(postingRegion, bm...)
	}

	mappingRegion := make([]byte, len(flatToSrc)*4)
	for i, src := range flatToSrc {
		binary.LittleEndian.PutUint32(mappingRegion[i*4:], src)
	}

	artifact := make([]byte, 32, 32+len(dictBuf)+len(postingRegion)+len(mappingRegion))
	binary.BigEndian.PutUint32(artifact[0:4], jsonidx.SupportedVersion)
	binary.BigEndian.PutUint32(artifact[4:8], uint32(width))
	binary.BigEndian.PutUint64(artifact[8:16], uint64(len(dictBuf)))
	binary.BigEndian.PutUint64(artifact[16:24], uint64(len(postingRegion)))
	binary.BigEndian.PutUint64(artifact[24:32], uint64(len(mappingRegion)))
	artifact = append(artifact, dictBuf...)
	artifact = append(artifact, postingRegion...)
	artifact = append(artifact, mappingRegion...)

	return artifact, nil
}
