package schema

import (
	"strconv"
	"strings"

	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

func (m *mapper) dynasty(f *fields) *entity.Dynasty {
	d := &entity.Dynasty{
		ID:        f.id,
		Key:       f.str("key"),
		Name:      f.str("name", "localized_name"),
		FoundDate: f.date("found_date"),
		Leaders:   f.refs(entityid.Character, "historical"),
	}
	if v, ok := f.obj.Get("prestige"); ok && v.Kind() == node.KindObject {
		p := &fields{m: m, section: f.section, id: f.id, obj: v}
		d.Prestige = p.float("currency")
		d.AccumulatedPrestige = p.float("accumulated")
	} else {
		d.Prestige = f.float("prestige")
	}
	d.Perks = m.perks(f)
	return d
}

// perks reads either a list of perk names or a `track=level` block; the
// latter keeps only the track names.
func (m *mapper) perks(f *fields) []string {
	for _, key := range []string{"perk", "perks"} {
		v, ok := f.obj.Get(key)
		if !ok {
			continue
		}
		if v.Kind() == node.KindObject {
			var out []string
			for _, e := range v.Entries() {
				out = append(out, e.Key)
			}
			return out
		}
		return f.strs(key)
	}
	return nil
}

func (m *mapper) house(f *fields) *entity.House {
	return &entity.House{
		ID:        f.id,
		Key:       f.str("key"),
		Name:      f.str("name", "localized_name"),
		Motto:     f.str("motto"),
		FoundDate: f.date("found_date"),
		Dynasty:   f.ref(entityid.Dynasty, "dynasty"),
		Head:      f.ref(entityid.Character, "head_of_house"),
		Leaders:   f.refs(entityid.Character, "historical"),
	}
}

func (m *mapper) title(f *fields) *entity.Title {
	t := &entity.Title{
		ID:             f.id,
		Key:            f.str("key"),
		Name:           f.str("name"),
		Created:        f.date("date"),
		Holder:         f.ref(entityid.Character, "holder"),
		DeJureLiege:    f.ref(entityid.Title, "de_jure_liege"),
		DeFactoLiege:   f.ref(entityid.Title, "de_facto_liege"),
		Capital:        f.ref(entityid.Title, "capital"),
		Faith:          f.ref(entityid.Faith, "faith"),
		Culture:        f.ref(entityid.Culture, "culture"),
		DeJureVassals:  f.refs(entityid.Title, "de_jure_vassals"),
		DeFactoVassals: f.refs(entityid.Title, "vassals"),
	}
	if !t.DeFactoLiege.IsSet() {
		t.DeFactoLiege = f.ref(entityid.Title, "liege")
	}
	t.Tier = entity.TierOf(t.Key)
	t.History = m.titleHistory(f)
	return t
}

// titleHistory reads `history={ <date>=<holder> <date>={ type=.. holder=.. } }`.
// A date may repeat, and a value may be a list of such blocks.
func (m *mapper) titleHistory(f *fields) []entity.TitleHistoryEntry {
	v, ok := f.obj.Get("history")
	if !ok || v.Kind() != node.KindObject {
		return nil
	}
	var out []entity.TitleHistoryEntry
	for _, e := range v.Entries() {
		date, ok := historyDate(e.Key)
		if !ok {
			f.fail("history", "history key %q is not a date", e.Key)
			continue
		}
		for _, item := range e.Value.AsList() {
			entry := entity.TitleHistoryEntry{Date: date}
			if item.Kind() == node.KindObject {
				h := &fields{m: m, section: f.section, id: f.id, obj: item}
				entry.Type = h.str("type")
				entry.Holder = h.ref(entityid.Character, "holder")
			} else if r, ok := f.toRef(entityid.Character, "history", item); ok {
				entry.Holder = r
			}
			out = append(out, entry)
		}
	}
	return out
}

// historyDate reads a history key: `y.m.d` in text saves, an hour count in
// binary ones.
func historyDate(key string) (node.Date, bool) {
	if d, ok := node.ParseDate(key); ok {
		return d, true
	}
	hours, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return node.Date{}, false
	}
	return node.DateFromHours(hours)
}

func (m *mapper) culture(f *fields) *entity.Culture {
	return &entity.Culture{
		ID:            f.id,
		Name:          f.str("name"),
		Ethos:         f.str("ethos"),
		Heritage:      f.str("heritage"),
		Language:      f.str("language"),
		MartialCustom: f.str("martial_custom"),
		Created:       f.date("created"),
		Traditions:    f.strs("traditions"),
		Parents:       f.refs(entityid.Culture, "parents"),
	}
}

// faith splits the doctrine list into tenets and the remaining doctrines.
func (m *mapper) faith(f *fields) *entity.Faith {
	fa := &entity.Faith{
		ID:            f.id,
		Name:          f.str("name", "template", "tag"),
		Fervor:        f.float("fervor"),
		ReligiousHead: f.ref(entityid.Title, "religious_head"),
	}
	for _, d := range f.strs("doctrine") {
		if strings.HasPrefix(d, "tenet_") {
			fa.Tenets = append(fa.Tenets, d)
		} else {
			fa.Doctrines = append(fa.Doctrines, d)
		}
	}
	return fa
}

func (m *mapper) artifact(f *fields) *entity.Artifact {
	a := &entity.Artifact{
		ID:          f.id,
		Name:        f.str("name"),
		Description: f.str("description"),
		Type:        f.str("type"),
		Rarity:      f.str("rarity"),
		Quality:     f.integer("quality"),
		Wealth:      f.integer("wealth"),
		Owner:       f.ref(entityid.Character, "owner"),
	}
	entries, _ := f.obj.Path("history", "entries")
	for _, item := range entries.AsList() {
		if item.Kind() != node.KindObject {
			continue
		}
		h := &fields{m: m, section: f.section, id: f.id, obj: item}
		a.History = append(a.History, entity.ArtifactEvent{
			Type:      h.str("type"),
			Date:      h.date("date"),
			Actor:     h.ref(entityid.Character, "actor"),
			Recipient: h.ref(entityid.Character, "recipient"),
		})
	}
	return a
}

// memory reads participants from a `role=character` block.
func (m *mapper) memory(f *fields) *entity.Memory {
	mem := &entity.Memory{
		ID:      f.id,
		Type:    f.str("type"),
		Created: f.date("creation_date"),
		Owner:   f.ref(entityid.Character, "owner"),
	}
	participants, ok := f.obj.Get("participants")
	if ok && participants.Kind() == node.KindObject {
		for _, e := range participants.Entries() {
			if r, ok := f.toRef(entityid.Character, "participants", e.Value); ok {
				mem.Participants = append(mem.Participants, entity.Participant{Role: e.Key, Ref: r})
			}
		}
	}
	return mem
}

func (m *mapper) province(f *fields) *entity.Province {
	p := &entity.Province{
		ID:      f.id,
		Culture: f.ref(entityid.Culture, "culture"),
		Faith:   f.ref(entityid.Faith, "faith"),
	}
	holding := f.sub("holding")
	p.Holding = holding.str("type")
	if b, ok := holding.obj.Get("buildings"); ok {
		for _, item := range b.AsList() {
			if item.Kind() == node.KindObject {
				if t, ok := item.Get("type"); ok {
					p.Buildings = append(p.Buildings, t.Text())
				}
				continue
			}
			if item.IsScalar() {
				p.Buildings = append(p.Buildings, item.Text())
			}
		}
	}
	return p
}
