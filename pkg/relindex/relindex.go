// Package relindex maps ordered pairs of argument spans to known relations.
// The index is built once per document and is read-only afterwards.
package relindex

import (
	"fmt"

	"github.com/soundprediction/relex/pkg/types"
)

// SpanKey is an order-significant composite key over two argument spans.
// Equality is structural: (a,b) and (b,a) are distinct keys. The struct is
// comparable, so it can be used directly as a map key.
type SpanKey struct {
	Arg1Begin int
	Arg1End   int
	Arg2Begin int
	Arg2End   int
}

// Key builds the ordered key for a queried argument pair.
func Key(arg1, arg2 types.ArgumentMention) SpanKey {
	return SpanKey{
		Arg1Begin: arg1.Begin,
		Arg1End:   arg1.End,
		Arg2Begin: arg2.Begin,
		Arg2End:   arg2.End,
	}
}

func (k SpanKey) String() string {
	return fmt.Sprintf("SpanKey(%d,%d,%d,%d)", k.Arg1Begin, k.Arg1End, k.Arg2Begin, k.Arg2End)
}

// Index maps ordered argument-span pairs to their gold relation.
type Index struct {
	relations map[SpanKey]types.RelationRecord
}

// Build indexes the given relations by the ordered key (first.span, second.span),
// where first and second follow each record's own role metadata rather than its
// slot order. At most one relation may occupy an ordered key; a later record
// silently overwrites an earlier one. The input data model assumes at most one
// relation per pair, so an overwrite indicates a data error upstream.
func Build(records []types.RelationRecord) *Index {
	relations := make(map[SpanKey]types.RelationRecord, len(records))
	for _, r := range records {
		first, second := r.Arguments()
		relations[Key(first, second)] = r
	}
	return &Index{relations: relations}
}

// Lookup finds the relation stored under the exact ordered pair (arg1, arg2).
func (ix *Index) Lookup(arg1, arg2 types.ArgumentMention) (types.RelationRecord, bool) {
	r, ok := ix.relations[Key(arg1, arg2)]
	return r, ok
}

// Len returns the number of indexed ordered pairs.
func (ix *Index) Len() int {
	return len(ix.relations)
}

// Categories builds a lookup from ordered span pairs to relation categories,
// normalized by role order. Used for gold-versus-predicted comparison during
// error analysis; never consulted for labeling.
func Categories(records []types.RelationRecord) map[SpanKey]string {
	categories := make(map[SpanKey]string, len(records))
	for _, r := range records {
		first, second := r.Arguments()
		categories[Key(first, second)] = r.Category
	}
	return categories
}
