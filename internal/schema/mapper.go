package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// ErrNotObject is returned when the decoded root is not an Object.
var ErrNotObject = errors.New("save root is not a block of sections")

// Records holds every record mapped from one save, in source order.
type Records struct {
	Meta       entity.Meta
	Characters []*entity.Character
	Dynasties  []*entity.Dynasty
	Houses     []*entity.House
	Titles     []*entity.Title
	Cultures   []*entity.Culture
	Faiths     []*entity.Faith
	Artifacts  []*entity.Artifact
	Memories   []*entity.Memory
	Provinces  []*entity.Province
	Players    []*entity.Player

	// Errors lists every record or field the mapper skipped.
	Errors []*SchemaError
}

// Count returns how many records of kind were mapped.
func (r *Records) Count(kind entityid.Kind) int {
	switch kind {
	case entityid.Character:
		return len(r.Characters)
	case entityid.Dynasty:
		return len(r.Dynasties)
	case entityid.House:
		return len(r.Houses)
	case entityid.Title:
		return len(r.Titles)
	case entityid.Culture:
		return len(r.Cultures)
	case entityid.Faith:
		return len(r.Faiths)
	case entityid.Artifact:
		return len(r.Artifacts)
	case entityid.Memory:
		return len(r.Memories)
	case entityid.Province:
		return len(r.Provinces)
	}
	return 0
}

// section is an id-keyed block of records: `path={ <id>={...} ... }`.
type section struct {
	path []string
	kind entityid.Kind
}

var idKeyedSections = []section{
	{path: []string{"living"}, kind: entityid.Character},
	{path: []string{"dead_unprunable"}, kind: entityid.Character},
	{path: []string{"characters", "dead_prunable"}, kind: entityid.Character},
	{path: []string{"dynasties", "dynasties"}, kind: entityid.Dynasty},
	{path: []string{"dynasties", "dynasty_house"}, kind: entityid.House},
	{path: []string{"landed_titles", "landed_titles"}, kind: entityid.Title},
	{path: []string{"culture_manager", "cultures"}, kind: entityid.Culture},
	{path: []string{"religion", "faiths"}, kind: entityid.Faith},
	{path: []string{"artifacts", "artifacts"}, kind: entityid.Artifact},
	{path: []string{"character_memory_manager", "database"}, kind: entityid.Memory},
	{path: []string{"provinces"}, kind: entityid.Province},
}

// inlineSections are repeated top-level blocks that carry their own `id`.
var inlineSections = []struct {
	key  string
	kind entityid.Kind
}{
	{key: "character", kind: entityid.Character},
	{key: "dynasty", kind: entityid.Dynasty},
	{key: "house", kind: entityid.House},
	{key: "title", kind: entityid.Title},
	{key: "culture", kind: entityid.Culture},
	{key: "faith", kind: entityid.Faith},
	{key: "artifact", kind: entityid.Artifact},
	{key: "memory", kind: entityid.Memory},
	{key: "province", kind: entityid.Province},
}

type county struct {
	faith   entity.Ref
	culture entity.Ref
}

type mapper struct {
	logger   *slog.Logger
	out      *Records
	traits   []string
	vassals  map[uint32]entity.Ref
	counties map[string]county
}

// Map walks root and returns the records it describes. Only a root that is
// not an Object, or a cancelled context, is an error; every other problem is
// recorded in Records.Errors.
func Map(ctx context.Context, root *node.Node) (*Records, error) {
	if root == nil || root.Kind() != node.KindObject {
		return nil, ErrNotObject
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Schema mapping started.", "sections", root.Len())

	m := &mapper{
		logger:   logger,
		out:      &Records{},
		vassals:  make(map[uint32]entity.Ref),
		counties: make(map[string]county),
	}

	// Lookup tables first: records refer into them.
	m.readMeta(root)
	m.readTraits(root)
	m.readVassalContracts(root)
	m.readCounties(root)

	for _, s := range idKeyedSections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.mapIDKeyed(root, s)
	}
	for _, s := range inlineSections {
		for _, v := range root.Values(s.key) {
			m.mapInline(s.key, s.kind, v)
		}
	}
	m.applyCounties()
	m.readPlayers(root)

	logger.Debug("Schema mapping complete.",
		"characters", len(m.out.Characters),
		"titles", len(m.out.Titles),
		"houses", len(m.out.Houses),
		"dynasties", len(m.out.Dynasties),
		"errors", len(m.out.Errors),
	)
	return m.out, nil
}

func (m *mapper) fail(section string, id entityid.ID, field, format string, args ...any) {
	err := &SchemaError{Section: section, Entity: id, Field: field, Reason: fmt.Sprintf(format, args...)}
	m.out.Errors = append(m.out.Errors, err)
	m.logger.Warn("Schema error, value skipped.", "section", section, "entity", id.String(), "field", field, "reason", err.Reason)
}

func sectionName(path []string) string {
	name := path[0]
	for _, p := range path[1:] {
		name += "." + p
	}
	return name
}

func (m *mapper) mapIDKeyed(root *node.Node, s section) {
	name := sectionName(s.path)
	block, ok := root.Path(s.path...)
	if !ok {
		return
	}
	if block.Kind() == node.KindList && block.Len() == 0 {
		return
	}
	if block.Kind() != node.KindObject {
		m.fail(name, entityid.ID{}, "", "expected a block of records, found %s", block.Kind())
		return
	}
	for _, e := range block.Entries() {
		num, err := strconv.ParseUint(e.Key, 10, 32)
		if err != nil {
			m.fail(name, entityid.ID{}, e.Key, "record key is not a numeric id")
			continue
		}
		id := entityid.New(s.kind, uint32(num))
		if word, ok := e.Value.Str(); ok && word == "none" {
			continue
		}
		obj := e.Value
		if obj.Kind() == node.KindList && obj.Len() == 0 {
			// `{ }` decodes as an empty list; for a record it is an empty block.
			obj = node.NewBuilder().BuildObject()
		}
		if obj.Kind() != node.KindObject {
			m.fail(name, id, "", "expected a record block, found %s", obj.Kind())
			continue
		}
		m.mapRecord(&fields{m: m, section: name, id: id, obj: obj})
	}
}

func (m *mapper) mapInline(key string, kind entityid.Kind, v *node.Node) {
	if v.Kind() != node.KindObject {
		m.fail(key, entityid.ID{}, "", "expected a record block, found %s", v.Kind())
		return
	}
	raw, ok := v.Get("id")
	if !ok {
		m.fail(key, entityid.ID{}, "id", "record has no id")
		return
	}
	num, ok := raw.Int()
	if !ok || num < 0 || num >= noneID {
		m.fail(key, entityid.ID{}, "id", "invalid id %q", raw.Text())
		return
	}
	m.mapRecord(&fields{m: m, section: key, id: entityid.New(kind, uint32(num)), obj: v})
}

func (m *mapper) mapRecord(f *fields) {
	switch f.id.Kind {
	case entityid.Character:
		m.out.Characters = append(m.out.Characters, m.character(f))
	case entityid.Dynasty:
		m.out.Dynasties = append(m.out.Dynasties, m.dynasty(f))
	case entityid.House:
		m.out.Houses = append(m.out.Houses, m.house(f))
	case entityid.Title:
		m.out.Titles = append(m.out.Titles, m.title(f))
	case entityid.Culture:
		m.out.Cultures = append(m.out.Cultures, m.culture(f))
	case entityid.Faith:
		m.out.Faiths = append(m.out.Faiths, m.faith(f))
	case entityid.Artifact:
		m.out.Artifacts = append(m.out.Artifacts, m.artifact(f))
	case entityid.Memory:
		m.out.Memories = append(m.out.Memories, m.memory(f))
	case entityid.Province:
		m.out.Provinces = append(m.out.Provinces, m.province(f))
	}
}
