// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import (
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// Dynasty groups houses descending from one founder.
type Dynasty struct {
	ID                  entityid.ID
	Key                 string
	Name                string
	FoundDate           node.Date
	Prestige            float64
	AccumulatedPrestige float64
	Perks               []string

	Leaders []Ref
	Houses  []Ref
}

func (d *Dynasty) EntityID() entityid.ID { return d.ID }

func (d *Dynasty) DisplayName() string { return firstNonEmpty(d.Name, d.Key, d.ID.String()) }

func (d *Dynasty) Refs() []*Ref {
	return refPtrs(refPtrs(nil, d.Leaders), d.Houses)
}

func (d *Dynasty) Links() []Link {
	out := links(nil, RelHouse, d.Houses...)
	return links(out, RelLeader, d.Leaders...)
}

// House is a cadet branch of a dynasty.
type House struct {
	ID        entityid.ID
	Key       string
	Name      string
	Motto     string
	FoundDate node.Date

	Dynasty Ref
	Head    Ref
	Leaders []Ref
}

func (h *House) EntityID() entityid.ID { return h.ID }

func (h *House) DisplayName() string { return firstNonEmpty(h.Name, h.Key, h.ID.String()) }

func (h *House) Refs() []*Ref {
	return refPtrs([]*Ref{&h.Dynasty, &h.Head}, h.Leaders)
}

func (h *House) Links() []Link {
	out := links(nil, RelDynasty, h.Dynasty)
	out = links(out, RelHead, h.Head)
	return links(out, RelLeader, h.Leaders...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
