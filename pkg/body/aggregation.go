package body

import (
	"bytes"
	"encoding/json"
)

// MetaKey is the reserved option key carrying per-aggregation metadata.
// It is stripped from the leaf options and surfaced as a sibling "meta"
// key on the entry.
const MetaKey = "_meta"

// AggregationMap is a name-keyed mapping of aggregation entries that
// preserves insertion order when serialized. A plain Go map would
// marshal its keys alphabetically.
type AggregationMap struct {
	names   []string
	entries map[string]map[string]any
}

func newAggregationMap() *AggregationMap {
	return &AggregationMap{entries: make(map[string]map[string]any)}
}

// set inserts or overwrites an entry. Overwriting keeps the name's
// original position in the order.
func (m *AggregationMap) set(name string, entry map[string]any) {
	if _, ok := m.entries[name]; !ok {
		m.names = append(m.names, name)
	}
	m.entries[name] = entry
}

// Len returns the number of entries.
func (m *AggregationMap) Len() int {
	return len(m.names)
}

// Names returns the entry names in insertion order.
func (m *AggregationMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Get returns the entry for name.
func (m *AggregationMap) Get(name string) (map[string]any, bool) {
	entry, ok := m.entries[name]
	return entry, ok
}

// MarshalJSON serializes the entries as a JSON object in insertion
// order.
func (m *AggregationMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		entry, err := json.Marshal(m.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *AggregationMap) clone() *AggregationMap {
	out := newAggregationMap()
	for _, name := range m.names {
		out.set(name, deepCopyMap(m.entries[name]))
	}
	return out
}

// aggConfig carries the optional parameters of one Aggregation call.
// Presence of each parameter is explicit instead of being sniffed from
// argument types.
type aggConfig struct {
	name    string
	options map[string]any
	nested  func(*NestedBuilder) *NestedBuilder
}

// AggOption configures a single Aggregation call.
type AggOption func(*aggConfig)

// WithName sets an explicit entry name instead of the derived
// "agg_<kind>_<field>" default.
func WithName(name string) AggOption {
	return func(c *aggConfig) { c.name = name }
}

// WithOptions sets the leaf options of the aggregation. A MetaKey
// entry becomes the entry's meta and is excluded from the leaf.
func WithOptions(options map[string]any) AggOption {
	return func(c *aggConfig) { c.options = options }
}

// WithSubBuilder registers a callback defining nested filter and
// sub-aggregation clauses. The callback receives a fresh NestedBuilder
// and should return it for chaining; returning nil falls back to the
// instance that was passed in.
func WithSubBuilder(fn func(*NestedBuilder) *NestedBuilder) AggOption {
	return func(c *aggConfig) { c.nested = fn }
}

// AggregationComposer accumulates named aggregation entries. Names are
// unique; a later call with an existing name overwrites the prior
// entry.
type AggregationComposer struct {
	aggs *AggregationMap
}

// NewAggregationComposer returns an empty aggregation composer.
func NewAggregationComposer() *AggregationComposer {
	return &AggregationComposer{aggs: newAggregationMap()}
}

// Aggregation inserts one named aggregation entry. The kind is the
// aggregation operator (terms, sum, date_range, ...) and is passed
// through opaquely; field may be empty for aggregations that need no
// field.
func (a *AggregationComposer) Aggregation(kind, field string, opts ...AggOption) {
	var cfg aggConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	name := cfg.name
	if name == "" {
		name = "agg_" + kind + "_" + field
	}

	options := cfg.options
	var meta any
	if v, ok := options[MetaKey]; ok {
		meta = v
		clean := make(map[string]any, len(options)-1)
		for k, val := range options {
			if k != MetaKey {
				clean[k] = val
			}
		}
		options = clean
	}

	entry := map[string]any{
		kind: buildClause(field, nil, options),
	}
	if meta != nil {
		entry["meta"] = meta
	}

	if cfg.nested != nil {
		nested := NewNestedBuilder()
		if returned := cfg.nested(nested); returned != nil {
			nested = returned
		}
		if nested.HasFilter() {
			entry["filter"] = nested.GetFilter()
		}
		if nested.HasAggregations() {
			entry["aggs"] = nested.GetAggregations()
		}
	}

	a.aggs.set(name, entry)
}

// Agg is an alias for Aggregation.
func (a *AggregationComposer) Agg(kind, field string, opts ...AggOption) {
	a.Aggregation(kind, field, opts...)
}

// HasAggregations reports whether any entry has been added.
func (a *AggregationComposer) HasAggregations() bool {
	return a.aggs.Len() > 0
}

// GetAggregations returns the live entry mapping.
func (a *AggregationComposer) GetAggregations() *AggregationMap {
	return a.aggs
}

// NestedBuilder combines a filter composer and an aggregation composer
// for defining the content below one bucket aggregation. Every
// WithSubBuilder callback receives its own independent instance; its
// state is folded into the parent entry, never into the parent's
// top-level accumulators.
type NestedBuilder struct {
	filters *FilterComposer
	aggs    *AggregationComposer
}

// NewNestedBuilder returns an empty nested builder.
func NewNestedBuilder() *NestedBuilder {
	return &NestedBuilder{
		filters: NewFilterComposer(),
		aggs:    NewAggregationComposer(),
	}
}

// Filter adds a clause to the nested must set.
func (n *NestedBuilder) Filter(kind, field string, value any, opts ...map[string]any) *NestedBuilder {
	n.filters.Filter(kind, field, value, opts...)
	return n
}

// AndFilter is an alias for Filter.
func (n *NestedBuilder) AndFilter(kind, field string, value any, opts ...map[string]any) *NestedBuilder {
	n.filters.AndFilter(kind, field, value, opts...)
	return n
}

// OrFilter adds a clause to the nested should set.
func (n *NestedBuilder) OrFilter(kind, field string, value any, opts ...map[string]any) *NestedBuilder {
	n.filters.OrFilter(kind, field, value, opts...)
	return n
}

// NotFilter adds a clause to the nested must_not set.
func (n *NestedBuilder) NotFilter(kind, field string, value any, opts ...map[string]any) *NestedBuilder {
	n.filters.NotFilter(kind, field, value, opts...)
	return n
}

// Aggregation adds a nested sub-aggregation.
func (n *NestedBuilder) Aggregation(kind, field string, opts ...AggOption) *NestedBuilder {
	n.aggs.Aggregation(kind, field, opts...)
	return n
}

// Agg is an alias for Aggregation.
func (n *NestedBuilder) Agg(kind, field string, opts ...AggOption) *NestedBuilder {
	return n.Aggregation(kind, field, opts...)
}

// HasFilter reports whether any nested filter clause has been added.
func (n *NestedBuilder) HasFilter() bool {
	return n.filters.HasFilter()
}

// GetFilter returns the reduced nested filter tree.
func (n *NestedBuilder) GetFilter() map[string]any {
	return n.filters.GetFilter()
}

// HasAggregations reports whether any sub-aggregation has been added.
func (n *NestedBuilder) HasAggregations() bool {
	return n.aggs.HasAggregations()
}

// GetAggregations returns the nested entry mapping.
func (n *NestedBuilder) GetAggregations() *AggregationMap {
	return n.aggs.GetAggregations()
}
