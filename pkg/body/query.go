package body

// QueryComposer accumulates scoring query clauses and reduces them
// into a boolean combinator tree. The clause vocabulary (match, term,
// range, ...) is passed through opaquely.
type QueryComposer struct {
	clauses boolSet
}

// NewQueryComposer returns an empty query composer.
func NewQueryComposer() *QueryComposer {
	return &QueryComposer{}
}

// Query adds a clause to the must set.
func (q *QueryComposer) Query(kind, field string, value any, opts ...map[string]any) {
	q.clauses.must = append(q.clauses.must, queryClause(kind, field, value, opts...))
}

// OrQuery adds a clause to the should set.
func (q *QueryComposer) OrQuery(kind, field string, value any, opts ...map[string]any) {
	q.clauses.should = append(q.clauses.should, queryClause(kind, field, value, opts...))
}

// NotQuery adds a clause to the must_not set.
func (q *QueryComposer) NotQuery(kind, field string, value any, opts ...map[string]any) {
	q.clauses.mustNot = append(q.clauses.mustNot, queryClause(kind, field, value, opts...))
}

// HasQuery reports whether any query clause has been added.
func (q *QueryComposer) HasQuery() bool {
	return !q.clauses.empty()
}

// GetQuery returns the reduced query tree, or nil when empty.
func (q *QueryComposer) GetQuery() map[string]any {
	return q.clauses.tree()
}
