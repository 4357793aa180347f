package body

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildClause_FoldsFieldAndBoost(t *testing.T) {
	boost := 2.5
	clause := buildClause("title", &boost, map[string]any{"size": 10})

	require.Equal(t, map[string]any{
		"field": "title",
		"boost": 2.5,
		"size":  10,
	}, clause)
}

func TestBuildClause_OmitsAbsentParts(t *testing.T) {
	require.Equal(t, map[string]any{}, buildClause("", nil, nil))
	require.Equal(t, map[string]any{"field": "user"}, buildClause("user", nil, nil))
}

func TestBuildClause_CopiesOptions(t *testing.T) {
	options := map[string]any{"size": 10}
	clause := buildClause("user", nil, options)

	clause["size"] = 99
	require.Equal(t, 10, options["size"])
}
