// Portions Copyright 2016-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import "github.com/pkg/errors"

// Sentinel errors for the reader's error taxonomy (see matching_doc_ids
// contract). Callers should compare against these with errors.Is; helper
// constructors below attach positional detail while preserving the
// sentinel via errors.Wrapf.
var (
	// ErrCorruptIndex is returned when the artifact's header, region sizes,
	// or an internal offset is inconsistent with its declared layout.
	// Fatal to the reader instance that produced it.
	ErrCorruptIndex = errors.New("jsonidx: corrupt index")

	// ErrMalformedKey is returned when the key path resolver can't parse a
	// bracketed key (unbalanced brackets, empty index, non-decimal index).
	ErrMalformedKey = errors.New("jsonidx: malformed key")

	// ErrUnsupportedPredicate is returned for predicate kinds outside
	// {EQ, NOT_EQ, IN, NOT_IN, IS_NULL, IS_NOT_NULL}.
	ErrUnsupportedPredicate = errors.New("jsonidx: unsupported predicate")

	// ErrNestedExclusive is returned when an exclusive predicate (NOT_EQ,
	// NOT_IN, IS_NULL) appears under an AND/OR node instead of at the
	// filter root.
	ErrNestedExclusive = errors.New("jsonidx: exclusive predicate nested under and/or")

	// ErrCancelled is returned when a caller-supplied cancellation check
	// fired between fold steps of an AND/OR evaluation.
	ErrCancelled = errors.New("jsonidx: query cancelled")
)

func corruptf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorruptIndex, format, args...)
}

func malformedKeyf(key string, format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedKey, "key %q: "+format, append([]interface{}{key}, args...)...)
}
