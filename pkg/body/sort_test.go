package body

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSort_AppendsNewFields(t *testing.T) {
	b := New().
		Sort("timestamp", "desc").
		Sort("price", "asc")

	doc := b.Build()
	require.Equal(t, []map[string]any{
		{"timestamp": "desc"},
		{"price": "asc"},
	}, doc["sort"])
}

func TestSort_UpdatesDirectionInPlace(t *testing.T) {
	b := New().
		Sort("timestamp", "desc").
		Sort("price", "asc").
		Sort("timestamp", "asc")

	doc := b.Build()
	require.Equal(t, []map[string]any{
		{"timestamp": "asc"},
		{"price": "asc"},
	}, doc["sort"])
}

func TestSort_EmptyDirectionDefaultsToAsc(t *testing.T) {
	doc := New().Sort("name", "").Build()
	require.Equal(t, []map[string]any{{"name": "asc"}}, doc["sort"])
}

func TestSortList_MergesPerKey(t *testing.T) {
	b := New().
		Sort("timestamp", "desc").
		SortList(
			map[string]any{"timestamp": map[string]any{"order": "asc", "mode": "avg"}},
			map[string]any{"channel": "desc"},
		)

	doc := b.Build()
	require.Equal(t, []map[string]any{
		{"timestamp": map[string]any{"order": "asc", "mode": "avg"}},
		{"channel": "desc"},
	}, doc["sort"])
}

func TestSortList_GeoDistanceIsNeverDeduplicated(t *testing.T) {
	first := map[string]any{
		GeoDistanceKey: map[string]any{
			"pin.location": []any{-70.0, 40.0},
			"order":        "asc",
			"unit":         "km",
		},
	}
	second := map[string]any{
		GeoDistanceKey: map[string]any{
			"warehouse.location": []any{-80.0, 35.0},
			"order":              "asc",
			"unit":               "km",
		},
	}

	b := New().SortList(first).SortList(second)

	doc := b.Build()
	sorted, ok := doc["sort"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, sorted, 2)
	require.Equal(t, first, sorted[0])
	require.Equal(t, second, sorted[1])
}

func TestSort_GeoDistanceDoesNotBlockFieldUpdates(t *testing.T) {
	b := New().
		SortList(map[string]any{GeoDistanceKey: map[string]any{"pin": []any{1.0, 2.0}}}).
		Sort("timestamp", "desc").
		Sort("timestamp", "asc")

	doc := b.Build()
	sorted := doc["sort"].([]map[string]any)
	require.Len(t, sorted, 2)
	require.Equal(t, map[string]any{"timestamp": "asc"}, sorted[1])
}
