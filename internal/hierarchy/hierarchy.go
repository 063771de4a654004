package hierarchy

import (
	"context"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
)

// Titles is the part of the registry hierarchy building reads.
type Titles interface {
	Enumerate(kind entityid.Kind) []entity.Entity
	Title(ref entity.Ref) (*entity.Title, bool)
}

// Hierarchy holds the de jure and de facto forests.
type Hierarchy struct {
	DeJure  *Forest
	DeFacto *Forest
	// Dropped lists the edges removed to break cycles, per forest name.
	Dropped map[string][]Edge
}

// Build creates both forests from every title in src. Liege references
// that do not resolve to a title are ignored.
func Build(ctx context.Context, src Titles) (*Hierarchy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)

	h := &Hierarchy{
		DeJure:  newForest("de_jure"),
		DeFacto: newForest("de_facto"),
		Dropped: make(map[string][]Edge),
	}
	titles := src.Enumerate(entityid.Title)
	for _, e := range titles {
		h.DeJure.addNode(e.EntityID())
		h.DeFacto.addNode(e.EntityID())
	}

	for _, e := range titles {
		t, ok := e.(*entity.Title)
		if !ok {
			continue
		}
		link := func(f *Forest, ref entity.Ref) {
			liege, ok := src.Title(ref)
			if !ok {
				return
			}
			if err := f.addEdge(t.ID, liege.ID); err != nil {
				logger.Warn("Skipping title edge.", "forest", f.name, "error", err)
			}
		}
		link(h.DeJure, t.DeJureLiege)
		link(h.DeFacto, t.DeFactoLiege)
	}

	for _, f := range []*Forest{h.DeJure, h.DeFacto} {
		f.sortChildren()
		dropped := f.breakCycles()
		for _, e := range dropped {
			logger.Warn("Title hierarchy cycle, edge dropped.", "forest", f.name, "child", e.Child.String(), "parent", e.Parent.String())
		}
		if len(dropped) > 0 {
			h.Dropped[f.name] = dropped
		}
	}

	logger.Debug("Title hierarchy built.", "titles", len(titles), "de_jure_roots", len(h.DeJure.Roots()), "de_facto_roots", len(h.DeFacto.Roots()))
	return h, nil
}
