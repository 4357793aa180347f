package search

import (
	"encoding/json"
	"time"
)

// Hit is one raw document hit. The source is left unparsed; this
// module has no schema awareness.
type Hit struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// Result is the parsed search response.
type Result struct {
	Hits         []Hit
	Total        int64
	MaxScore     *float64
	Aggregations map[string]json.RawMessage
	Took         time.Duration
}
