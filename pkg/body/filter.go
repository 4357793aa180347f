package body

// FilterComposer accumulates non-scoring filter clauses and reduces
// them into a boolean combinator tree, same shape as QueryComposer.
type FilterComposer struct {
	clauses boolSet
}

// NewFilterComposer returns an empty filter composer.
func NewFilterComposer() *FilterComposer {
	return &FilterComposer{}
}

// Filter adds a clause to the must set.
func (f *FilterComposer) Filter(kind, field string, value any, opts ...map[string]any) {
	f.clauses.must = append(f.clauses.must, queryClause(kind, field, value, opts...))
}

// AndFilter is an alias for Filter.
func (f *FilterComposer) AndFilter(kind, field string, value any, opts ...map[string]any) {
	f.Filter(kind, field, value, opts...)
}

// OrFilter adds a clause to the should set.
func (f *FilterComposer) OrFilter(kind, field string, value any, opts ...map[string]any) {
	f.clauses.should = append(f.clauses.should, queryClause(kind, field, value, opts...))
}

// NotFilter adds a clause to the must_not set.
func (f *FilterComposer) NotFilter(kind, field string, value any, opts ...map[string]any) {
	f.clauses.mustNot = append(f.clauses.mustNot, queryClause(kind, field, value, opts...))
}

// HasFilter reports whether any filter clause has been added.
func (f *FilterComposer) HasFilter() bool {
	return !f.clauses.empty()
}

// GetFilter returns the reduced filter tree, or nil when empty.
func (f *FilterComposer) GetFilter() map[string]any {
	return f.clauses.tree()
}
