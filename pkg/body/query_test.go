package body

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryComposer_SingleClauseCollapses(t *testing.T) {
	q := NewQueryComposer()
	require.False(t, q.HasQuery())
	require.Nil(t, q.GetQuery())

	q.Query("match", "message", "hello")
	require.True(t, q.HasQuery())
	require.Equal(t, map[string]any{"match": map[string]any{"message": "hello"}}, q.GetQuery())
}

func TestQueryComposer_MultipleClausesBuildBoolTree(t *testing.T) {
	q := NewQueryComposer()
	q.Query("match", "message", "hello")
	q.Query("term", "status", "published")
	q.OrQuery("match", "tags", "golang")
	q.NotQuery("term", "hidden", true)

	tree := q.GetQuery()
	boolTree, ok := tree["bool"].(map[string]any)
	require.True(t, ok)
	require.Len(t, boolTree["must"], 2)
	require.Len(t, boolTree["should"], 1)
	require.Len(t, boolTree["must_not"], 1)
}

func TestQueryComposer_ValuelessClauseUsesFieldKey(t *testing.T) {
	q := NewQueryComposer()
	q.Query("exists", "user", nil)

	require.Equal(t, map[string]any{"exists": map[string]any{"field": "user"}}, q.GetQuery())
}

func TestQueryComposer_OptionsMergeIntoClause(t *testing.T) {
	q := NewQueryComposer()
	q.Query("multi_match", "", map[string]any{
		"query":  "quick brown fox",
		"fields": []any{"title^3", "summary"},
	}, map[string]any{"type": "best_fields"})

	require.Equal(t, map[string]any{
		"multi_match": map[string]any{
			"query":  "quick brown fox",
			"fields": []any{"title^3", "summary"},
			"type":   "best_fields",
		},
	}, q.GetQuery())
}
