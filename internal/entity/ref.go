// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import "github.com/vk/ck3graph/internal/entityid"

// Slot is the index of an entity inside its kind's arena in the registry.
type Slot int32

// refState tracks where a Ref is in its lifecycle.
type refState uint8

const (
	refUnbound refState = iota
	refBound
	refDangling
)

// Ref is a non-owning reference from one entity to another. The mapper fills
// in the target id; the registry binds it to a slot once every entity
// exists. A Ref never keeps its target alive; all lookups go through the
// registry.
type Ref struct {
	ID    entityid.ID
	slot  Slot
	state refState
}

// RefTo returns an unbound reference to id.
func RefTo(kind entityid.Kind, num uint32) Ref {
	return Ref{ID: entityid.New(kind, num)}
}

// IsSet reports whether the reference names a target at all.
func (r Ref) IsSet() bool { return !r.ID.IsZero() }

// Bound reports whether the reference resolved to an existing entity.
func (r Ref) Bound() bool { return r.state == refBound }

// Dangling reports whether resolution found no entity with the target id.
func (r Ref) Dangling() bool { return r.state == refDangling }

// Slot returns the bound slot. It is only meaningful when Bound is true.
func (r Ref) Slot() Slot { return r.slot }

// Bind returns a copy of r bound to slot.
func (r Ref) Bind(slot Slot) Ref {
	r.slot = slot
	r.state = refBound
	return r
}

// Dangle returns a copy of r marked as pointing at a missing entity.
func (r Ref) Dangle() Ref {
	r.slot = -1
	r.state = refDangling
	return r
}

// Link is a reference together with the relation it was found under. It is
// the unit the traversal walks.
type Link struct {
	Relation Relation
	Ref      Ref
}

// Relation names an edge type between two entities.
type Relation string

const (
	RelParent        Relation = "parent"
	RelChild         Relation = "child"
	RelSpouse        Relation = "spouse"
	RelFormerSpouse  Relation = "former_spouse"
	RelLiege         Relation = "liege"
	RelVassal        Relation = "vassal"
	RelHouse         Relation = "house"
	RelDynasty       Relation = "dynasty"
	RelFaith         Relation = "faith"
	RelCulture       Relation = "culture"
	RelTitle         Relation = "title"
	RelMemory        Relation = "memory"
	RelArtifact      Relation = "artifact"
	RelKill          Relation = "kill"
	RelLeader        Relation = "leader"
	RelHead          Relation = "head"
	RelHolder        Relation = "holder"
	RelDeJureLiege   Relation = "de_jure_liege"
	RelDeFactoLiege  Relation = "de_facto_liege"
	RelDeJureVassal  Relation = "de_jure_vassal"
	RelDeFactoVassal Relation = "de_facto_vassal"
	RelCapital       Relation = "capital"
	RelParentCulture Relation = "parent_culture"
	RelReligiousHead Relation = "religious_head"
	RelOwner         Relation = "owner"
	RelParticipant   Relation = "participant"
	RelHistory       Relation = "history"
)
