// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package entity

import (
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// Culture is a culture definition with its ancestry.
type Culture struct {
	ID            entityid.ID
	Name          string
	Ethos         string
	Heritage      string
	Language      string
	MartialCustom string
	Created       node.Date
	Traditions    []string

	Parents []Ref
}

func (c *Culture) EntityID() entityid.ID { return c.ID }

func (c *Culture) DisplayName() string { return firstNonEmpty(c.Name, c.ID.String()) }

func (c *Culture) Refs() []*Ref { return refPtrs(nil, c.Parents) }

func (c *Culture) Links() []Link { return links(nil, RelParentCulture, c.Parents...) }

// Faith is a faith with its tenets and doctrines.
type Faith struct {
	ID        entityid.ID
	Name      string
	Tenets    []string
	Doctrines []string
	Fervor    float64

	// ReligiousHead references the head-of-faith title, not a character.
	ReligiousHead Ref
}

func (f *Faith) EntityID() entityid.ID { return f.ID }

func (f *Faith) DisplayName() string { return firstNonEmpty(f.Name, f.ID.String()) }

func (f *Faith) Refs() []*Ref { return []*Ref{&f.ReligiousHead} }

func (f *Faith) Links() []Link { return links(nil, RelReligiousHead, f.ReligiousHead) }
