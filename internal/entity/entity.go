// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package entity defines the typed records extracted from a save.
//
// Records hold plain attributes plus Ref fields pointing at other records.
// The schema mapper creates records with unbound refs; the registry binds
// them. Nothing in this package owns another record.
package entity

import "github.com/vk/ck3graph/internal/entityid"

// Entity is implemented by every record the registry stores.
type Entity interface {
	EntityID() entityid.ID
	// DisplayName is the best human label available without localization.
	DisplayName() string
	// Refs returns pointers to every reference field so the registry can
	// bind them in place.
	Refs() []*Ref
	// Links returns every set reference tagged with its relation.
	Links() []Link
}

func refPtrs(dst []*Ref, refs []Ref) []*Ref {
	for i := range refs {
		dst = append(dst, &refs[i])
	}
	return dst
}

func links(dst []Link, rel Relation, refs ...Ref) []Link {
	for _, r := range refs {
		if r.IsSet() {
			dst = append(dst, Link{Relation: rel, Ref: r})
		}
	}
	return dst
}

// ContainsRef reports whether refs already targets id.
func ContainsRef(refs []Ref, id entityid.ID) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}
