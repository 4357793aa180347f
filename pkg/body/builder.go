package body

// Builder owns sort, pagination and raw passthrough state and fronts
// one query, one filter and one aggregation composer behind a single
// chainable surface. All mutators return the builder itself.
//
// A Builder is not safe for concurrent use; one request body is built
// by one sequential call chain.
type Builder struct {
	queries *QueryComposer
	filters *FilterComposer
	aggs    *AggregationComposer

	sort []map[string]any
	from *int
	size *int
	raw  map[string]any
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		queries: NewQueryComposer(),
		filters: NewFilterComposer(),
		aggs:    NewAggregationComposer(),
	}
}

// Query adds a scoring clause to the must set.
func (b *Builder) Query(kind, field string, value any, opts ...map[string]any) *Builder {
	b.queries.Query(kind, field, value, opts...)
	return b
}

// OrQuery adds a scoring clause to the should set.
func (b *Builder) OrQuery(kind, field string, value any, opts ...map[string]any) *Builder {
	b.queries.OrQuery(kind, field, value, opts...)
	return b
}

// NotQuery adds a scoring clause to the must_not set.
func (b *Builder) NotQuery(kind, field string, value any, opts ...map[string]any) *Builder {
	b.queries.NotQuery(kind, field, value, opts...)
	return b
}

// Filter adds a non-scoring clause to the filter must set.
func (b *Builder) Filter(kind, field string, value any, opts ...map[string]any) *Builder {
	b.filters.Filter(kind, field, value, opts...)
	return b
}

// AndFilter is an alias for Filter.
func (b *Builder) AndFilter(kind, field string, value any, opts ...map[string]any) *Builder {
	b.filters.AndFilter(kind, field, value, opts...)
	return b
}

// OrFilter adds a non-scoring clause to the filter should set.
func (b *Builder) OrFilter(kind, field string, value any, opts ...map[string]any) *Builder {
	b.filters.OrFilter(kind, field, value, opts...)
	return b
}

// NotFilter adds a non-scoring clause to the filter must_not set.
func (b *Builder) NotFilter(kind, field string, value any, opts ...map[string]any) *Builder {
	b.filters.NotFilter(kind, field, value, opts...)
	return b
}

// Aggregation inserts one named aggregation entry.
func (b *Builder) Aggregation(kind, field string, opts ...AggOption) *Builder {
	b.aggs.Aggregation(kind, field, opts...)
	return b
}

// Agg is an alias for Aggregation.
func (b *Builder) Agg(kind, field string, opts ...AggOption) *Builder {
	return b.Aggregation(kind, field, opts...)
}

// Sort inserts or updates a sort entry for field. An empty direction
// defaults to ascending. A field already in the list keeps its
// position and only has its direction updated.
func (b *Builder) Sort(field, direction string) *Builder {
	if direction == "" {
		direction = "asc"
	}
	b.sort = mergeSort(b.sort, map[string]any{field: direction})
	return b
}

// SortList merges an ordered sequence of sort descriptors, applying
// the same update-or-append rule per key. Descriptors carrying
// GeoDistanceKey are always appended.
func (b *Builder) SortList(descriptors ...map[string]any) *Builder {
	b.sort = mergeSort(b.sort, descriptors...)
	return b
}

// From sets the pagination offset verbatim.
func (b *Builder) From(n int) *Builder {
	b.from = &n
	return b
}

// Size sets the page size verbatim.
func (b *Builder) Size(n int) *Builder {
	b.size = &n
	return b
}

// RawOption sets an arbitrary top-level key on the output document, as
// an escape hatch for DSL features the builder has no method for.
// Last write wins.
func (b *Builder) RawOption(key string, value any) *Builder {
	if b.raw == nil {
		b.raw = make(map[string]any)
	}
	b.raw[key] = value
	return b
}

// HasQuery reports whether any query clause has been added.
func (b *Builder) HasQuery() bool { return b.queries.HasQuery() }

// GetQuery returns the reduced query tree.
func (b *Builder) GetQuery() map[string]any { return b.queries.GetQuery() }

// HasFilter reports whether any filter clause has been added.
func (b *Builder) HasFilter() bool { return b.filters.HasFilter() }

// GetFilter returns the reduced filter tree.
func (b *Builder) GetFilter() map[string]any { return b.filters.GetFilter() }

// HasAggregations reports whether any aggregation has been added.
func (b *Builder) HasAggregations() bool { return b.aggs.HasAggregations() }

// GetAggregations returns the live aggregation mapping.
func (b *Builder) GetAggregations() *AggregationMap { return b.aggs.GetAggregations() }

// Build reduces the accumulated state into a request body using the
// current dialect: filters nest under query.bool.filter, queries merge
// under query.bool (or become query directly when no filter is set)
// and aggregations attach under aggs. Build never mutates the builder;
// every call returns an independently owned document.
func (b *Builder) Build() map[string]any {
	doc := b.baseDocument()

	query := deepCopyMap(b.queries.GetQuery())
	filter := deepCopyMap(b.filters.GetFilter())

	switch {
	case filter != nil:
		combined := map[string]any{"filter": filter}
		if query != nil {
			if inner, ok := query["bool"].(map[string]any); ok && len(query) == 1 {
				for k, v := range inner {
					if _, exists := combined[k]; !exists {
						combined[k] = v
					}
				}
			} else {
				combined["must"] = query
			}
		}
		doc["query"] = map[string]any{"bool": combined}
	case query != nil:
		doc["query"] = query
	}

	if b.aggs.HasAggregations() {
		doc["aggs"] = b.aggs.GetAggregations().clone()
	}

	return doc
}

// BuildV1 reduces the accumulated state into the legacy dialect:
// filters and queries nest under query.filtered and aggregations
// attach under aggregations.
func (b *Builder) BuildV1() map[string]any {
	doc := b.baseDocument()

	query := deepCopyMap(b.queries.GetQuery())
	filter := deepCopyMap(b.filters.GetFilter())

	switch {
	case filter != nil:
		filtered := map[string]any{"filter": filter}
		if query != nil {
			filtered["query"] = query
		}
		doc["query"] = map[string]any{"filtered": filtered}
	case query != nil:
		doc["query"] = query
	}

	if b.aggs.HasAggregations() {
		doc["aggregations"] = b.aggs.GetAggregations().clone()
	}

	return doc
}

// baseDocument deep-copies the sort, pagination and raw state so the
// reduction can mutate the result freely.
func (b *Builder) baseDocument() map[string]any {
	doc := deepCopyMap(b.raw)
	if doc == nil {
		doc = make(map[string]any)
	}
	if len(b.sort) > 0 {
		doc["sort"] = deepCopyValue(b.sort)
	}
	if b.from != nil {
		doc["from"] = *b.from
	}
	if b.size != nil {
		doc["size"] = *b.size
	}
	return doc
}
