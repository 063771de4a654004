// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import "github.com/vk/ck3graph/internal/node"

// Meta is the save's header information.
type Meta struct {
	Date       node.Date
	PlayerName string
	Version    string
}

// LineageEntry is one character the player controlled, in order.
type LineageEntry struct {
	Character Ref
	Date      node.Date
	Score     int
}

// Player is a played character with the line of rulers before it.
type Player struct {
	Name      string
	Character Ref
	Lineage   []LineageEntry
}

// Refs returns pointers to every reference field.
func (p *Player) Refs() []*Ref {
	out := []*Ref{&p.Character}
	for i := range p.Lineage {
		out = append(out, &p.Lineage[i].Character)
	}
	return out
}
