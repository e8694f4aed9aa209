// Portions Copyright 2016-2018 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package testutil

import "strconv"

// canonicalScalar renders a decoded JSON scalar the way the offline builder
// is assumed to before interning it into a key-value token: strings pass
// through unchanged, bool and float64 get a single fixed textual form so
// that the same logical value always produces the same dictionary entry.
// A JSON null reports isNull so its leaf contributes no value token, only
// (optionally) existence -- mirroring types.TypeID's scalar canonicalization
// split between a type tag and its textual form.
func canonicalScalar(v interface{}) (s string, isNull bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, false
	case bool:
		return strconv.FormatBool(t), false
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), false
	case int:
		return strconv.Itoa(t), false
	case int64:
		return strconv.FormatInt(t, 10), false
	default:
		return "", true
	}
}
