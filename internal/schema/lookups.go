package schema

import (
	"strconv"

	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

func (m *mapper) readMeta(root *node.Node) {
	f := &fields{m: m, section: "meta_data"}
	f.obj, _ = root.Get("meta_data")
	if f.obj != nil && f.obj.Kind() != node.KindObject {
		m.fail("meta_data", entityid.ID{}, "", "expected a block, found %s", f.obj.Kind())
		return
	}
	m.out.Meta = entity.Meta{
		Date:       f.date("meta_date"),
		PlayerName: f.str("meta_player_name"),
		Version:    f.str("version", "meta_version"),
	}
	if m.out.Meta.Date.IsZero() {
		if d, ok := root.Get("date"); ok {
			m.out.Meta.Date, _ = d.Date()
		}
	}
}

// readTraits loads the index used by character trait lists.
func (m *mapper) readTraits(root *node.Node) {
	v, ok := root.Get("traits_lookup")
	if !ok {
		return
	}
	for _, item := range v.AsList() {
		m.traits = append(m.traits, item.Text())
	}
}

// readVassalContracts maps contract id to the vassal character it binds.
// Older saves keep contracts under `active`, newer ones under `database`.
func (m *mapper) readVassalContracts(root *node.Node) {
	for _, path := range [][]string{{"vassal_contracts", "database"}, {"vassal_contracts", "active"}} {
		block, ok := root.Path(path...)
		if !ok || block.Kind() != node.KindObject {
			continue
		}
		for _, e := range block.Entries() {
			num, err := strconv.ParseUint(e.Key, 10, 32)
			if err != nil || e.Value.Kind() != node.KindObject {
				continue
			}
			f := &fields{m: m, section: sectionName(path), obj: e.Value}
			if r := f.ref(entityid.Character, "vassal"); r.IsSet() {
				m.vassals[uint32(num)] = r
			}
		}
	}
}

// readCounties loads per-county faith and culture, keyed by title key.
func (m *mapper) readCounties(root *node.Node) {
	block, ok := root.Path("county_manager", "counties")
	if !ok || block.Kind() != node.KindObject {
		return
	}
	for _, e := range block.Entries() {
		if e.Value.Kind() != node.KindObject {
			continue
		}
		f := &fields{m: m, section: "county_manager.counties", obj: e.Value}
		m.counties[e.Key] = county{
			faith:   f.ref(entityid.Faith, "faith"),
			culture: f.ref(entityid.Culture, "culture"),
		}
	}
}

func (m *mapper) applyCounties() {
	if len(m.counties) == 0 {
		return
	}
	for _, t := range m.out.Titles {
		c, ok := m.counties[t.Key]
		if !ok {
			continue
		}
		if !t.Faith.IsSet() {
			t.Faith = c.faith
		}
		if !t.Culture.IsSet() {
			t.Culture = c.culture
		}
	}
}

// readPlayers maps every played_character block. Lineage entries are either
// bare character ids or blocks with character, date and score.
func (m *mapper) readPlayers(root *node.Node) {
	for _, v := range root.Values("played_character") {
		if v.Kind() != node.KindObject {
			m.fail("played_character", entityid.ID{}, "", "expected a block, found %s", v.Kind())
			continue
		}
		f := &fields{m: m, section: "played_character", obj: v}
		p := &entity.Player{
			Name:      f.str("name"),
			Character: f.ref(entityid.Character, "character"),
		}
		if lineage, ok := v.Get("lineage"); ok {
			for _, item := range lineage.AsList() {
				if item.Kind() == node.KindObject {
					lf := &fields{m: m, section: "played_character.lineage", obj: item}
					p.Lineage = append(p.Lineage, entity.LineageEntry{
						Character: lf.ref(entityid.Character, "character"),
						Date:      lf.date("date"),
						Score:     lf.integer("score"),
					})
					continue
				}
				if r, ok := f.toRef(entityid.Character, "lineage", item); ok {
					p.Lineage = append(p.Lineage, entity.LineageEntry{Character: r})
				}
			}
		}
		m.out.Players = append(m.out.Players, p)
	}
}
