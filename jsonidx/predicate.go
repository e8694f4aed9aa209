// Portions Copyright 2019 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import "github.com/outcaste-io/sroar"

// kvSep is the reserved key/value separator byte (spec §3, §6.2): a single
// byte distinct from anything legal inside a key segment. 0x00 doubles as
// the dictionary's (C2) fixed-width padding byte, which is safe because a
// key segment never contains it either.
const kvSep = 0x00

// Kind is the exhaustive set of predicate kinds the evaluator supports
// (spec §4.7); anything else is ErrUnsupportedPredicate.
type Kind int

const (
	EQ Kind = iota
	NotEQ
	In
	NotIn
	IsNull
	IsNotNull
)

// Predicate is the tagged variant the filter tree's leaves carry. Key is
// the raw, possibly-bracketed path (e.g. "tags[0]"); Value is used by EQ
// and NotEQ; Values is used by In and NotIn.
type Predicate struct {
	Kind   Kind
	Key    string
	Value  string
	Values []string
}

// exclusive reports whether p's truth over a source doc requires that
// *no* flattened expansion satisfy the inclusive form (spec §4.7, §4.9).
func (p Predicate) exclusive() bool {
	switch p.Kind {
	case NotEQ, NotIn, IsNull:
		return true
	default:
		return false
	}
}

// asInclusive returns the predicate evaluated at the root's complement
// step: NOT_EQ -> EQ, NOT_IN -> IN, IS_NULL -> IS_NOT_NULL. Only valid to
// call on an exclusive predicate sitting at the filter root.
func (p Predicate) asInclusive() Predicate {
	q := p
	switch p.Kind {
	case NotEQ:
		q.Kind = EQ
	case NotIn:
		q.Kind = In
	case IsNull:
		q.Kind = IsNotNull
	}
	return q
}

func keyValueToken(key, value string) []byte {
	tok := make([]byte, len(key)+1+len(value))
	n := copy(tok, key)
	tok[n] = kvSep
	copy(tok[n+1:], value)
	return tok
}

// evalPredicate resolves p against the dictionary and posting store to a
// bitmap of flattened doc ids (spec §4.7, steps 1-4). The returned bitmap
// must be treated as read-only by the caller: it may alias a borrowed
// posting view straight off the mapped region.
func evalPredicate(c *core, p Predicate) (*sroar.Bitmap, error) {
	constraints, residual, err := resolveKeyPath(p.Key)
	if err != nil {
		return nil, err
	}

	// Step 2: intersect the postings of every constraint token. A missing
	// constraint token means no flattened expansion can satisfy the
	// array-index chain, so the predicate is empty immediately.
	var constraintBitmaps []*sroar.Bitmap
	for _, tok := range constraints {
		id, ok := c.dict.indexOf([]byte(tok))
		if !ok {
			return sroar.NewBitmap(), nil
		}
		bm, err := c.postings.get(id)
		if err != nil {
			return nil, err
		}
		constraintBitmaps = append(constraintBitmaps, bm)
	}

	var acc *sroar.Bitmap // None until the first constraint folds in.
	if len(constraintBitmaps) > 0 {
		acc = sroar.FastAnd(constraintBitmaps...)
	}

	value, err := evalPredicateValue(c, p, residual)
	if err != nil {
		return nil, err
	}

	if acc == nil {
		return value, nil
	}
	acc.And(value)
	return acc, nil
}

// evalPredicateValue computes the predicate-specific value bitmap V
// (spec §4.7 step 3), operating on the residual key (array-index
// constraints already stripped out).
func evalPredicateValue(c *core, p Predicate, residual string) (*sroar.Bitmap, error) {
	switch p.Kind {
	case EQ, NotEQ:
		id, ok := c.dict.indexOf(keyValueToken(residual, p.Value))
		if !ok {
			return sroar.NewBitmap(), nil
		}
		return c.postings.get(id)

	case In, NotIn:
		result := sroar.NewBitmap()
		for _, v := range p.Values {
			id, ok := c.dict.indexOf(keyValueToken(residual, v))
			if !ok {
				continue // Missing values contribute nothing.
			}
			bm, err := c.postings.get(id)
			if err != nil {
				return nil, err
			}
			result.Or(bm)
		}
		return result, nil

	case IsNull, IsNotNull:
		id, ok := c.dict.indexOf([]byte(residual))
		if !ok {
			return sroar.NewBitmap(), nil
		}
		return c.postings.get(id)

	default:
		return nil, ErrUnsupportedPredicate
	}
}
