// Package registry owns every entity of one extraction and binds the
// references between them.
//
// Construction happens in two phases on a Builder, which is the only writer:
//
//  1. Instantiate: every record gets a slot in its kind's arena before any
//     reference is looked at, so forward and cyclic references
//     (liege/vassal, parent/child, dynasty/house) need no special ordering.
//  2. Resolve: Build binds each entity.Ref to the slot of its target. A
//     missing target leaves the ref dangling and is reported as a
//     ReferenceError; it never aborts the build. Derived back-links
//     (parents, vassals, houses, de jure vassals) are added here too.
//
// Build returns a closed Registry. Its entity data is read-only from then
// on and safe for concurrent readers; the only later writes are traversal
// annotations, which live in a separate mutex-guarded table.
package registry
