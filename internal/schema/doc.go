// Package schema maps a decoded save tree onto entity records.
//
// The mapper knows which top-level sections hold which entity kind and how
// each record's fields are spelled. It never fails the whole save for a bad
// record: a malformed optional field is defaulted, a record without a usable
// id is skipped, and a section of the wrong shape is skipped. Each of these
// is logged and collected as a SchemaError.
//
// References are stored as unbound entity.Ref values; binding them is the
// registry's job.
package schema
