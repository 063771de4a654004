// Package node defines the value tree produced by the save decoders.
//
// A Node is a tagged variant: a scalar (string, integer, float, date,
// boolean, color), a List, or an Object. Objects keep their entries in
// source order and allow a key to repeat; Get on a repeated key returns all
// of its values as a List, so nothing in the source is ever dropped.
package node
