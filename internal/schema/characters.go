package schema

import (
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// character maps both the save layout (alive_data, dead_data, family_data,
// landed_data sub-blocks) and flat records that put liege, vassals and
// family links at the top level.
func (m *mapper) character(f *fields) *entity.Character {
	c := &entity.Character{
		ID:       f.id,
		Name:     f.str("first_name", "name"),
		Nickname: f.str("nickname_text", "nickname"),
		Birth:    f.date("birth"),
		Female:   f.flag("female"),
		Skills:   f.ints("skill"),
		DNA:      f.str("dna"),
		Traits:   m.traitNames(f),
		Faith:    f.ref(entityid.Faith, "faith"),
		Culture:  f.ref(entityid.Culture, "culture"),
		House:    f.ref(entityid.House, "dynasty_house"),
		Liege:    f.ref(entityid.Character, "liege"),
		Vassals:  f.refs(entityid.Character, "vassals"),
		Children: f.refs(entityid.Character, "children"),
		Spouses:  f.refs(entityid.Character, "spouses"),
		Titles:   f.refs(entityid.Title, "titles"),
	}
	if !c.House.IsSet() {
		c.House = f.ref(entityid.House, "house")
	}

	if f.has("dead_data") {
		c.Dead = true
		dead := f.sub("dead_data")
		c.DeathDate = dead.date("date")
		c.DeathReason = dead.str("reason")
		if !c.Liege.IsSet() {
			c.Liege = dead.ref(entityid.Character, "liege")
		}
		for _, r := range dead.refs(entityid.Title, "domain") {
			c.Titles = appendRef(c.Titles, r)
		}
	}

	alive := f.sub("alive_data")
	c.Gold = alive.float("gold")
	c.Piety = alive.currency("piety")
	c.Prestige = alive.currency("prestige")
	c.Languages = alive.strs("languages")
	c.Perks = alive.strs("perk")
	c.Kills = alive.refs(entityid.Character, "kills")
	c.Memories = alive.refs(entityid.Memory, "memories")
	c.Artifacts = alive.sub("inventory").refs(entityid.Artifact, "artifacts")

	landed := f.sub("landed_data")
	c.Dread = landed.float("dread")
	for _, r := range landed.refs(entityid.Title, "domain") {
		c.Titles = appendRef(c.Titles, r)
	}
	for _, contract := range landed.ints("vassal_contracts") {
		if r, ok := m.vassals[uint32(contract)]; ok {
			c.Vassals = appendRef(c.Vassals, r)
		}
	}

	family := f.sub("family_data")
	for _, r := range family.refs(entityid.Character, "spouse") {
		c.Spouses = appendRef(c.Spouses, r)
	}
	c.Spouses = appendRef(c.Spouses, family.ref(entityid.Character, "primary_spouse"))
	c.FormerSpouses = family.refs(entityid.Character, "former_spouses")
	for _, r := range family.refs(entityid.Character, "child") {
		c.Children = appendRef(c.Children, r)
	}
	for _, r := range f.refs(entityid.Character, "child") {
		c.Children = appendRef(c.Children, r)
	}
	return c
}

// traitNames resolves trait indices through traits_lookup. Names written
// directly are kept as they are.
func (m *mapper) traitNames(f *fields) []string {
	v, ok := f.obj.Get("traits")
	if !ok {
		return nil
	}
	var out []string
	for _, item := range v.AsList() {
		if item.Kind() == node.KindString {
			out = append(out, item.Text())
			continue
		}
		idx, ok := item.Int()
		if !ok || idx < 0 || int(idx) >= len(m.traits) {
			f.fail("traits", "trait index %s is not in traits_lookup", item.Text())
			continue
		}
		out = append(out, m.traits[idx])
	}
	return out
}
