// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import (
	"strings"

	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// Tier is the rank of a landed title, derived from its key prefix.
type Tier string

const (
	TierBarony  Tier = "barony"
	TierCounty  Tier = "county"
	TierDuchy   Tier = "duchy"
	TierKingdom Tier = "kingdom"
	TierEmpire  Tier = "empire"
	TierOther   Tier = "other"
)

// TierOf maps a title key such as "k_england" to its tier.
func TierOf(key string) Tier {
	prefix, _, ok := strings.Cut(key, "_")
	if !ok {
		return TierOther
	}
	switch prefix {
	case "b":
		return TierBarony
	case "c":
		return TierCounty
	case "d":
		return TierDuchy
	case "k":
		return TierKingdom
	case "e":
		return TierEmpire
	}
	return TierOther
}

// TitleHistoryEntry is one ownership change of a title.
type TitleHistoryEntry struct {
	Date   node.Date
	Type   string
	Holder Ref
}

// Title is a landed title. De jure and de facto hierarchies are stored
// independently and may disagree.
type Title struct {
	ID      entityid.ID
	Key     string
	Name    string
	Tier    Tier
	Created node.Date

	Holder       Ref
	DeJureLiege  Ref
	DeFactoLiege Ref
	Capital      Ref
	Faith        Ref
	Culture      Ref

	DeJureVassals  []Ref
	DeFactoVassals []Ref
	History        []TitleHistoryEntry
}

func (t *Title) EntityID() entityid.ID { return t.ID }

func (t *Title) DisplayName() string { return firstNonEmpty(t.Name, t.Key, t.ID.String()) }

func (t *Title) Refs() []*Ref {
	out := []*Ref{&t.Holder, &t.DeJureLiege, &t.DeFactoLiege, &t.Capital, &t.Faith, &t.Culture}
	out = refPtrs(out, t.DeJureVassals)
	out = refPtrs(out, t.DeFactoVassals)
	for i := range t.History {
		out = append(out, &t.History[i].Holder)
	}
	return out
}

func (t *Title) Links() []Link {
	out := links(nil, RelHolder, t.Holder)
	out = links(out, RelDeJureLiege, t.DeJureLiege)
	out = links(out, RelDeFactoLiege, t.DeFactoLiege)
	out = links(out, RelDeJureVassal, t.DeJureVassals...)
	out = links(out, RelDeFactoVassal, t.DeFactoVassals...)
	out = links(out, RelCapital, t.Capital)
	out = links(out, RelFaith, t.Faith)
	out = links(out, RelCulture, t.Culture)
	for _, h := range t.History {
		out = links(out, RelHistory, h.Holder)
	}
	return out
}
