// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import (
	"strconv"

	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// Character is a living or dead character.
type Character struct {
	ID          entityid.ID
	Name        string
	Nickname    string
	Birth       node.Date
	Female      bool
	Dead        bool
	DeathDate   node.Date
	DeathReason string
	Skills      []int
	Traits      []string
	DNA         string
	Gold        float64
	Piety       float64
	Prestige    float64
	Dread       float64
	Languages   []string
	Perks       []string

	Faith   Ref
	Culture Ref
	House   Ref
	Liege   Ref

	Vassals       []Ref
	Parents       []Ref
	Children      []Ref
	Spouses       []Ref
	FormerSpouses []Ref
	Kills         []Ref
	Memories      []Ref
	Titles        []Ref
	Artifacts     []Ref
}

func (c *Character) EntityID() entityid.ID { return c.ID }

func (c *Character) DisplayName() string {
	if c.Name == "" {
		return "character " + strconv.FormatUint(uint64(c.ID.Num), 10)
	}
	return c.Name
}

func (c *Character) Refs() []*Ref {
	out := []*Ref{&c.Faith, &c.Culture, &c.House, &c.Liege}
	for _, refs := range [][]Ref{c.Vassals, c.Parents, c.Children, c.Spouses, c.FormerSpouses, c.Kills, c.Memories, c.Titles, c.Artifacts} {
		out = refPtrs(out, refs)
	}
	return out
}

func (c *Character) Links() []Link {
	var out []Link
	out = links(out, RelParent, c.Parents...)
	out = links(out, RelChild, c.Children...)
	out = links(out, RelSpouse, c.Spouses...)
	out = links(out, RelFormerSpouse, c.FormerSpouses...)
	out = links(out, RelLiege, c.Liege)
	out = links(out, RelVassal, c.Vassals...)
	out = links(out, RelHouse, c.House)
	out = links(out, RelFaith, c.Faith)
	out = links(out, RelCulture, c.Culture)
	out = links(out, RelTitle, c.Titles...)
	out = links(out, RelMemory, c.Memories...)
	out = links(out, RelArtifact, c.Artifacts...)
	out = links(out, RelKill, c.Kills...)
	return out
}
