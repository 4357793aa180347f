package body

// boolSet accumulates clauses for one bool combinator tree. It backs
// both the query and the filter composers.
type boolSet struct {
	must    []map[string]any
	should  []map[string]any
	mustNot []map[string]any
}

func (b *boolSet) empty() bool {
	return len(b.must) == 0 && len(b.should) == 0 && len(b.mustNot) == 0
}

// tree reduces the accumulated clauses. A single must clause with no
// siblings collapses to the clause itself instead of a bool wrapper.
func (b *boolSet) tree() map[string]any {
	if b.empty() {
		return nil
	}
	if len(b.must) == 1 && len(b.should) == 0 && len(b.mustNot) == 0 {
		return b.must[0]
	}

	combined := map[string]any{}
	if len(b.must) > 0 {
		combined["must"] = toAnySlice(b.must)
	}
	if len(b.should) > 0 {
		combined["should"] = toAnySlice(b.should)
	}
	if len(b.mustNot) > 0 {
		combined["must_not"] = toAnySlice(b.mustNot)
	}

	return map[string]any{"bool": combined}
}

func toAnySlice(clauses []map[string]any) []any {
	out := make([]any, len(clauses))
	for i, c := range clauses {
		out[i] = c
	}
	return out
}
