// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import (
	"strconv"
	"strings"
)

const indexMarker = ".$index="

// resolveKeyPath rewrites a raw key path with array indices (e.g.
// "a[0].b[1].c") into an ordered chain of constraint tokens (C6) plus the
// residual dotted key usable for value comparison.
//
// It scans left to right: each time it meets a '[' before any unmatched
// ']', it extracts the bracketed substring as a decimal integer (erroring
// if it isn't one), emits the constraint token "<prefix>.$index=<N>" where
// prefix is everything seen so far, then keeps scanning with that bracket
// removed. Constraint tokens come out in encounter order. A ']' left over
// once every bracket pair has been consumed is also a malformed key.
func resolveKeyPath(key string) (constraints []string, residual string, err error) {
	if key == "" {
		return nil, "", malformedKeyf(key, "key is empty")
	}

	rest := key
	for {
		i := strings.IndexByte(rest, '[')
		if i < 0 {
			break
		}
		j := strings.IndexByte(rest[i+1:], ']')
		if j < 0 {
			return nil, "", malformedKeyf(key, "unmatched '[' at offset %d", i)
		}
		j += i + 1 // absolute index of ']' within rest

		idxStr := rest[i+1 : j]
		n, ok := parseArrayIndex(idxStr)
		if !ok {
			return nil, "", malformedKeyf(key, "array index %q is not a non-negative decimal integer", idxStr)
		}

		prefix := rest[:i]
		constraints = append(constraints, prefix+indexMarker+strconv.Itoa(n))
		rest = prefix + rest[j+1:]
	}
	if strings.IndexByte(rest, ']') >= 0 {
		return nil, "", malformedKeyf(key, "unmatched ']'")
	}

	return constraints, rest, nil
}

// parseArrayIndex accepts only a non-empty run of ASCII digits: no sign,
// no leading '+', nothing non-decimal. "[]" and "[-1]" are both rejected
// here, matching spec's MalformedKey edge cases.
func parseArrayIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

