// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import (
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// ArtifactEvent is one entry of an artifact's history.
type ArtifactEvent struct {
	Type      string
	Date      node.Date
	Actor     Ref
	Recipient Ref
}

// Artifact is an item held in a character's inventory.
type Artifact struct {
	ID          entityid.ID
	Name        string
	Description string
	Type        string
	Rarity      string
	Quality     int
	Wealth      int

	Owner   Ref
	History []ArtifactEvent
}

func (a *Artifact) EntityID() entityid.ID { return a.ID }

func (a *Artifact) DisplayName() string { return firstNonEmpty(a.Name, a.ID.String()) }

func (a *Artifact) Refs() []*Ref {
	out := []*Ref{&a.Owner}
	for i := range a.History {
		out = append(out, &a.History[i].Actor, &a.History[i].Recipient)
	}
	return out
}

func (a *Artifact) Links() []Link {
	out := links(nil, RelOwner, a.Owner)
	for _, ev := range a.History {
		out = links(out, RelHistory, ev.Actor, ev.Recipient)
	}
	return out
}

// Participant is a character taking part in a memory under a role.
type Participant struct {
	Role string
	Ref  Ref
}

// Memory is a remembered event shared by its participants.
type Memory struct {
	ID      entityid.ID
	Type    string
	Created node.Date

	Owner        Ref
	Participants []Participant
}

func (m *Memory) EntityID() entityid.ID { return m.ID }

func (m *Memory) DisplayName() string { return firstNonEmpty(m.Type, m.ID.String()) }

func (m *Memory) Refs() []*Ref {
	out := []*Ref{&m.Owner}
	for i := range m.Participants {
		out = append(out, &m.Participants[i].Ref)
	}
	return out
}

func (m *Memory) Links() []Link {
	out := links(nil, RelOwner, m.Owner)
	for _, p := range m.Participants {
		out = links(out, RelParticipant, p.Ref)
	}
	return out
}

// Province is a map province and its holding.
type Province struct {
	ID        entityid.ID
	Holding   string
	Buildings []string

	Culture Ref
	Faith   Ref
}

func (p *Province) EntityID() entityid.ID { return p.ID }

func (p *Province) DisplayName() string { return p.ID.String() }

func (p *Province) Refs() []*Ref { return []*Ref{&p.Culture, &p.Faith} }

func (p *Province) Links() []Link {
	out := links(nil, RelCulture, p.Culture)
	return links(out, RelFaith, p.Faith)
}
