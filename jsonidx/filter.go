// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

package jsonidx

import "github.com/outcaste-io/sroar"

// NodeKind distinguishes the three filter tree node shapes (spec §4.8).
type NodeKind int

const (
	KindPredicate NodeKind = iota
	KindAnd
	KindOr
)

// FilterNode is the AST the surrounding query engine hands the reader.
// Leaves carry a Predicate; AND/OR nodes carry Children.
type FilterNode struct {
	Kind      NodeKind
	Predicate Predicate
	Children  []FilterNode
}

// CancelFunc is a caller-supplied cancellation check, polled between
// union/intersection fold steps at AND/OR fan-in (spec §5). Returning a
// non-nil error aborts evaluation; ErrCancelled is the conventional
// sentinel callers should return.
type CancelFunc func() error

// evaluate runs the filter tree at the flattened level (spec §4.8
// "Otherwise" branch): AND intersects, OR unions, predicate leaves go
// through evalPredicate. Any exclusive predicate found here -- i.e. below
// an AND/OR, since the true root-exclusive case is special-cased by the
// caller before evaluate is ever invoked -- is rejected.
func evaluate(c *core, node FilterNode, cancel CancelFunc) (*sroar.Bitmap, error) {
	switch node.Kind {
	case KindPredicate:
		if node.Predicate.exclusive() {
			return nil, ErrNestedExclusive
		}
		return evalPredicate(c, node.Predicate)

	case KindAnd:
		return foldChildren(c, node.Children, cancel, func(acc, child *sroar.Bitmap) { acc.And(child) })

	case KindOr:
		return foldChildren(c, node.Children, cancel, func(acc, child *sroar.Bitmap) { acc.Or(child) })

	default:
		return nil, ErrUnsupportedPredicate
	}
}

// foldChildren evaluates each child in input order, folding its result
// into an accumulator with combine. Children are processed left to right
// using in-place set algebra; AND and OR are commutative and associative,
// so order only affects allocation behavior, never the result.
func foldChildren(c *core, children []FilterNode, cancel CancelFunc,
	combine func(acc, child *sroar.Bitmap)) (*sroar.Bitmap, error) {

	var acc *sroar.Bitmap
	for _, child := range children {
		r, err := evaluate(c, child, cancel)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = r.Clone()
		} else {
			combine(acc, r)
		}
		if cancel != nil {
			if err := cancel(); err != nil {
				return nil, err
			}
		}
	}
	if acc == nil {
		acc = sroar.NewBitmap()
	}
	return acc, nil
}

// projectToSource maps every flattened doc id in flat through the
// flattened->source array (C4), deduplicating naturally since the result
// is itself a bitmap (spec §4.8's projection step).
func projectToSource(c *core, flat *sroar.Bitmap) (*sroar.Bitmap, error) {
	result := sroar.NewBitmap()
	for _, f := range flat.ToArray() {
		src, err := c.mapping.toSource(uint32(f))
		if err != nil {
			return nil, err
		}
		result.Set(uint64(src))
	}
	return result, nil
}

// complementSourceIDs returns [0, numSourceDocs) \ present.
func complementSourceIDs(present *sroar.Bitmap, numSourceDocs uint32) *sroar.Bitmap {
	result := sroar.NewBitmap()
	for i := uint32(0); i < numSourceDocs; i++ {
		if !present.Contains(uint64(i)) {
			result.Set(uint64(i))
		}
	}
	return result
}
