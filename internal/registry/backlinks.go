package registry

import (
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
)

// deriveBackLinks completes relations the save only records on one side.
// Every ref it adds is already bound.
func (b *Builder) deriveBackLinks() {
	for _, e := range b.arenas[entityid.Character].entities {
		c := e.(*entity.Character)
		self := b.boundRef(c.ID)

		for _, r := range c.Children {
			if child, ok := b.lookup(r).(*entity.Character); ok && !entity.ContainsRef(child.Parents, c.ID) {
				child.Parents = append(child.Parents, self)
			}
		}
		for _, r := range c.Spouses {
			if spouse, ok := b.lookup(r).(*entity.Character); ok && !entity.ContainsRef(spouse.Spouses, c.ID) {
				spouse.Spouses = append(spouse.Spouses, self)
			}
		}
		if liege, ok := b.lookup(c.Liege).(*entity.Character); ok && !entity.ContainsRef(liege.Vassals, c.ID) {
			liege.Vassals = append(liege.Vassals, self)
		}
		for _, r := range c.Vassals {
			if vassal, ok := b.lookup(r).(*entity.Character); ok && !vassal.Liege.IsSet() {
				vassal.Liege = self
			}
		}
	}

	for _, e := range b.arenas[entityid.House].entities {
		h := e.(*entity.House)
		if d, ok := b.lookup(h.Dynasty).(*entity.Dynasty); ok && !entity.ContainsRef(d.Houses, h.ID) {
			d.Houses = append(d.Houses, b.boundRef(h.ID))
		}
	}

	for _, e := range b.arenas[entityid.Title].entities {
		t := e.(*entity.Title)
		self := b.boundRef(t.ID)
		if liege, ok := b.lookup(t.DeJureLiege).(*entity.Title); ok && !entity.ContainsRef(liege.DeJureVassals, t.ID) {
			liege.DeJureVassals = append(liege.DeJureVassals, self)
		}
		for _, r := range t.DeJureVassals {
			if vassal, ok := b.lookup(r).(*entity.Title); ok && !vassal.DeJureLiege.IsSet() {
				vassal.DeJureLiege = self
			}
		}
		if liege, ok := b.lookup(t.DeFactoLiege).(*entity.Title); ok && !entity.ContainsRef(liege.DeFactoVassals, t.ID) {
			liege.DeFactoVassals = append(liege.DeFactoVassals, self)
		}
		for _, r := range t.DeFactoVassals {
			if vassal, ok := b.lookup(r).(*entity.Title); ok && !vassal.DeFactoLiege.IsSet() {
				vassal.DeFactoLiege = self
			}
		}
	}
}
