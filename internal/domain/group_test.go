package domain

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func communityResult(name, lga string, tier RiskTier) CommunityResult {
	return CommunityResult{Name: name, LGA: lga, Risk: tier}
}

func TestGroupedResults_OrderAndLookup(t *testing.T) {
	g := NewGroupedResults()
	g.Add(communityResult("Adadama", "Abi", RiskHigh))
	g.Add(communityResult("Afafanyi", "Igueben", RiskLow))
	g.Add(communityResult("Ediba", "Abi", RiskHigh))

	assert.Equal(t, []string{"Abi", "Igueben"}, g.Areas())
	assert.Equal(t, 3, g.Communities())

	abi, ok := g.ByArea("Abi")
	require.True(t, ok)
	require.Len(t, abi, 2)
	assert.Equal(t, "Adadama", abi[0].Name)
	assert.Equal(t, "Ediba", abi[1].Name)

	_, ok = g.ByArea("NoSuchLGA")
	assert.False(t, ok)
}

func TestGroupedResults_MarshalJSONKeepsAreaOrder(t *testing.T) {
	g := NewGroupedResults()
	g.Add(communityResult("Zed", "Zaria", RiskLow))
	g.Add(communityResult("Ada", "Abi", RiskHigh))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	// Zaria was seen first and must precede Abi despite sorting last.
	assert.Less(t, indexOf(t, data, `"Zaria"`), indexOf(t, data, `"Abi"`))

	var decoded map[string][]CommunityResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Ada", decoded["Abi"][0].Name)
}

func indexOf(t *testing.T, data []byte, sub string) int {
	t.Helper()
	idx := bytes.Index(data, []byte(sub))
	require.NotEqual(t, -1, idx, "%s not found in %s", sub, data)
	return idx
}
