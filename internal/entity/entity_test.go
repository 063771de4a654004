package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ck3graph/internal/entityid"
)

func TestRef_Lifecycle(t *testing.T) {
	r := RefTo(entityid.Character, 5)
	assert.True(t, r.IsSet())
	assert.False(t, r.Bound())
	assert.False(t, r.Dangling())

	bound := r.Bind(3)
	assert.True(t, bound.Bound())
	assert.Equal(t, Slot(3), bound.Slot())
	assert.False(t, r.Bound(), "Bind must not mutate the receiver")

	dangling := r.Dangle()
	assert.True(t, dangling.Dangling())
	assert.False(t, dangling.Bound())

	assert.False(t, Ref{}.IsSet())
}

func TestCharacter_RefsAreAddressable(t *testing.T) {
	c := &Character{
		ID:       entityid.New(entityid.Character, 1),
		Liege:    RefTo(entityid.Character, 2),
		Children: []Ref{RefTo(entityid.Character, 3), RefTo(entityid.Character, 4)},
	}
	for _, p := range c.Refs() {
		if p.IsSet() {
			*p = p.Bind(7)
		}
	}
	assert.True(t, c.Liege.Bound())
	assert.True(t, c.Children[1].Bound())
	assert.False(t, c.Faith.Bound())
}

func TestCharacter_LinksSkipUnsetRefs(t *testing.T) {
	c := &Character{
		ID:      entityid.New(entityid.Character, 1),
		Liege:   RefTo(entityid.Character, 2),
		Vassals: []Ref{RefTo(entityid.Character, 3)},
	}
	got := c.Links()
	require.Len(t, got, 2)
	assert.Equal(t, RelLiege, got[0].Relation)
	assert.Equal(t, RelVassal, got[1].Relation)
}

func TestTierOf(t *testing.T) {
	testCases := map[string]Tier{
		"b_london":     TierBarony,
		"c_london":     TierCounty,
		"d_essex":      TierDuchy,
		"k_england":    TierKingdom,
		"e_britannia":  TierEmpire,
		"x_custom":     TierOther,
		"nounderscore": TierOther,
	}
	for key, want := range testCases {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, TierOf(key))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "character 9", (&Character{ID: entityid.New(entityid.Character, 9)}).DisplayName())
	assert.Equal(t, "k_england", (&Title{Key: "k_england"}).DisplayName())
	assert.Equal(t, "Kingdom of England", (&Title{Key: "k_england", Name: "Kingdom of England"}).DisplayName())
}
