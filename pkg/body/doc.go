// Package body assembles OpenSearch/Elasticsearch request bodies.
//
// A Builder accumulates query clauses, boolean filter clauses, named
// aggregations, a sort list, pagination and raw passthrough keys
// through chained calls, then reduces everything into a plain
// map[string]any ready to be serialized as the request body. Two
// output dialects are supported: the current bool/filter shape
// (Build) and the legacy filtered-query shape (BuildV1).
//
// The builder never talks to a search engine. Execution lives in
// internal/opensearch/search.
package body
