// internal/entityid/doc.go

/*
Package entityid provides a structured, type-safe representation for entity
identifiers, based on the canonical format `kind:number`.

Save files refer to each other's records by bare numbers whose meaning
depends on the field they appear in. Pairing the number with its Kind keeps
a character 7 and a title 7 apart in every map and log line.
*/
package entityid
