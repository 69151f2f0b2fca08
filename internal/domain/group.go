package domain

import (
	"bytes"
	"encoding/json"
)

// GroupedResults maps LGA names to their community results. Area order is the
// order of first appearance, and results within an area keep append order, so
// two builds over the same input produce identical traversals and identical
// JSON. A plain map would lose that: Go randomizes map iteration and
// encoding/json sorts object keys.
type GroupedResults struct {
	areas  []string
	byArea map[string][]CommunityResult
}

// NewGroupedResults returns an empty grouping.
func NewGroupedResults() *GroupedResults {
	return &GroupedResults{byArea: make(map[string][]CommunityResult)}
}

// Add appends a result to its LGA's list, registering the area on first use.
func (g *GroupedResults) Add(result CommunityResult) {
	if _, ok := g.byArea[result.LGA]; !ok {
		g.areas = append(g.areas, result.LGA)
	}
	g.byArea[result.LGA] = append(g.byArea[result.LGA], result)
}

// Areas lists LGA names in first-seen order. The returned slice is shared;
// callers must not mutate it.
func (g *GroupedResults) Areas() []string {
	return g.areas
}

// ByArea returns the results for one LGA and whether the LGA exists.
func (g *GroupedResults) ByArea(lga string) ([]CommunityResult, bool) {
	results, ok := g.byArea[lga]
	return results, ok
}

// Communities returns the total number of community results across all areas.
func (g *GroupedResults) Communities() int {
	n := 0
	for _, results := range g.byArea {
		n += len(results)
	}
	return n
}

// MarshalJSON renders the grouping as a JSON object with areas in
// first-seen order.
func (g *GroupedResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lga := range g.areas {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lga)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(g.byArea[lga])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
