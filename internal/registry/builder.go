package registry

import (
	"context"
	"sort"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/schema"
)

// arena stores the entities of one kind. slots maps an id number to its
// index in entities.
type arena struct {
	entities []entity.Entity
	slots    map[uint32]entity.Slot
}

func newArena() *arena {
	return &arena{slots: make(map[uint32]entity.Slot)}
}

// Builder collects entities and resolves their references.
type Builder struct {
	arenas  map[entityid.Kind]*arena
	players []*entity.Player
	meta    entity.Meta
	refErrs []*ReferenceError
	closed  bool
}

// NewBuilder creates an empty builder with one arena per entity kind.
func NewBuilder() *Builder {
	b := &Builder{arenas: make(map[entityid.Kind]*arena, len(entityid.Kinds))}
	for _, k := range entityid.Kinds {
		b.arenas[k] = newArena()
	}
	return b
}

// Add instantiates e. A second entity with the same id replaces the first.
func (b *Builder) Add(ctx context.Context, e entity.Entity) error {
	if b.closed {
		return ErrClosed
	}
	id := e.EntityID()
	a, ok := b.arenas[id.Kind]
	if !ok {
		a = newArena()
		b.arenas[id.Kind] = a
	}
	if slot, dup := a.slots[id.Num]; dup {
		ctxlog.FromContext(ctx).Warn("Duplicate entity id, later record wins.", "entity", id.String())
		a.entities[slot] = e
		return nil
	}
	a.slots[id.Num] = entity.Slot(len(a.entities))
	a.entities = append(a.entities, e)
	return nil
}

// AddPlayer registers a played character entry.
func (b *Builder) AddPlayer(p *entity.Player) error {
	if b.closed {
		return ErrClosed
	}
	b.players = append(b.players, p)
	return nil
}

// SetMeta stores the save header.
func (b *Builder) SetMeta(m entity.Meta) {
	b.meta = m
}

// Populate instantiates every record of recs.
func (b *Builder) Populate(ctx context.Context, recs *schema.Records) error {
	b.SetMeta(recs.Meta)
	add := func(e entity.Entity) error { return b.Add(ctx, e) }
	for _, c := range recs.Characters {
		if err := add(c); err != nil {
			return err
		}
	}
	for _, d := range recs.Dynasties {
		if err := add(d); err != nil {
			return err
		}
	}
	for _, h := range recs.Houses {
		if err := add(h); err != nil {
			return err
		}
	}
	for _, t := range recs.Titles {
		if err := add(t); err != nil {
			return err
		}
	}
	for _, c := range recs.Cultures {
		if err := add(c); err != nil {
			return err
		}
	}
	for _, f := range recs.Faiths {
		if err := add(f); err != nil {
			return err
		}
	}
	for _, a := range recs.Artifacts {
		if err := add(a); err != nil {
			return err
		}
	}
	for _, m := range recs.Memories {
		if err := add(m); err != nil {
			return err
		}
	}
	for _, p := range recs.Provinces {
		if err := add(p); err != nil {
			return err
		}
	}
	for _, p := range recs.Players {
		if err := b.AddPlayer(p); err != nil {
			return err
		}
	}
	return nil
}

// Build resolves every reference and closes the builder. The returned
// Registry is complete; a failed Build returns no Registry at all.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	if b.closed {
		return nil, ErrClosed
	}
	b.closed = true
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reference resolution started.")

	// Slots are renumbered in ascending id order so enumeration is stable.
	for _, a := range b.arenas {
		a.sortByID()
	}

	bound := 0
	for _, kind := range entityid.Kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, e := range b.arenas[kind].entities {
			bound += b.bindAll(ctx, e.EntityID(), e.Refs())
		}
	}
	for _, p := range b.players {
		bound += b.bindAll(ctx, entityid.ID{}, p.Refs())
	}
	logger.Debug("References bound.", "bound", bound, "dangling", len(b.refErrs))

	b.deriveBackLinks()
	logger.Debug("Derived back-links added.")

	reg := &Registry{
		arenas:  b.arenas,
		players: b.players,
		meta:    b.meta,
		refErrs: b.refErrs,
		annots:  make(map[entityid.ID]Annotation),
	}
	b.arenas = nil
	b.players = nil
	return reg, nil
}

func (a *arena) sortByID() {
	sort.Slice(a.entities, func(i, j int) bool {
		return a.entities[i].EntityID().Num < a.entities[j].EntityID().Num
	})
	for i, e := range a.entities {
		a.slots[e.EntityID().Num] = entity.Slot(i)
	}
}

func (b *Builder) bindAll(ctx context.Context, source entityid.ID, refs []*entity.Ref) int {
	n := 0
	for _, r := range refs {
		if !r.IsSet() || r.Bound() {
			continue
		}
		if slot, ok := b.slotOf(r.ID); ok {
			*r = r.Bind(slot)
			n++
			continue
		}
		*r = r.Dangle()
		refErr := &ReferenceError{Source: source, Target: r.ID}
		b.refErrs = append(b.refErrs, refErr)
		ctxlog.FromContext(ctx).Warn("Dangling reference.", "source", source.String(), "target", r.ID.String())
	}
	return n
}

func (b *Builder) slotOf(id entityid.ID) (entity.Slot, bool) {
	a, ok := b.arenas[id.Kind]
	if !ok {
		return 0, false
	}
	slot, ok := a.slots[id.Num]
	return slot, ok
}

func (b *Builder) boundRef(id entityid.ID) entity.Ref {
	slot, _ := b.slotOf(id)
	return entity.Ref{ID: id}.Bind(slot)
}

func (b *Builder) lookup(r entity.Ref) entity.Entity {
	if !r.Bound() {
		return nil
	}
	return b.arenas[r.ID.Kind].entities[r.Slot()]
}
