package body

// buildClause folds a field name and an optional boost into a copy of
// the given options, producing the leaf definition object for a single
// clause. A missing field or boost contributes nothing.
func buildClause(field string, boost *float64, options map[string]any) map[string]any {
	clause := make(map[string]any, len(options)+2)
	for k, v := range options {
		clause[k] = v
	}
	if field != "" {
		clause["field"] = field
	}
	if boost != nil {
		clause["boost"] = *boost
	}
	return clause
}

// queryClause materializes one named query or filter clause. The value
// is keyed by field when both are present; a clause without a value
// falls back to the field-keyed leaf form (e.g. exists queries), and a
// clause without a field takes the value or options verbatim.
func queryClause(kind, field string, value any, opts ...map[string]any) map[string]any {
	inner := map[string]any{}

	switch {
	case field == "":
		if m, ok := value.(map[string]any); ok {
			for k, v := range m {
				inner[k] = v
			}
		}
	case value == nil:
		inner = buildClause(field, nil, mergeOptions(opts))
		return map[string]any{kind: inner}
	default:
		inner[field] = value
	}

	for k, v := range mergeOptions(opts) {
		inner[k] = v
	}

	return map[string]any{kind: inner}
}

func mergeOptions(opts []map[string]any) map[string]any {
	if len(opts) == 0 {
		return nil
	}
	merged := make(map[string]any)
	for _, m := range opts {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
