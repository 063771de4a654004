package node

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Node.
type Kind uint8

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindDate
	KindBool
	KindColor
	KindList
	KindObject
)

var kindNames = [...]string{
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindDate:    "date",
	KindBool:    "boolean",
	KindColor:   "color",
	KindList:    "list",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Entry is one key/value pair of an Object. Keys may repeat within an Object.
type Entry struct {
	Key   string
	Value *Node
}

// Node is a single value of a decoded save tree. Exactly one of the payload
// fields is meaningful, selected by kind. Nodes are never modified after the
// decoder that produced them returns.
type Node struct {
	kind Kind

	str   string
	num   int64
	float float64
	flag  bool
	date  Date
	color Color

	// items holds List elements, or the unkeyed values of an Object.
	items []*Node
	// entries holds Object pairs in source order, repeats included.
	entries []Entry
	// index maps an Object key to its positions in entries.
	index map[string][]int
}

// String returns a string scalar.
func String(s string) *Node { return &Node{kind: KindString, str: s} }

// Int returns an integer scalar.
func Int(i int64) *Node { return &Node{kind: KindInteger, num: i} }

// Float returns a float scalar.
func Float(f float64) *Node { return &Node{kind: KindFloat, float: f} }

// Bool returns a boolean scalar.
func Bool(b bool) *Node { return &Node{kind: KindBool, flag: b} }

// NewDate returns a date scalar.
func NewDate(d Date) *Node { return &Node{kind: KindDate, date: d} }

// NewColor returns a color scalar.
func NewColor(c Color) *Node { return &Node{kind: KindColor, color: c} }

// List returns a list of the given items.
func List(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{kind: KindList, items: items}
}

// Kind reports the variant held by n.
func (n *Node) Kind() Kind { return n.kind }

// IsScalar reports whether n is neither a List nor an Object.
func (n *Node) IsScalar() bool { return n.kind != KindList && n.kind != KindObject }

// Str returns the payload of a string scalar.
func (n *Node) Str() (string, bool) {
	if n == nil || n.kind != KindString {
		return "", false
	}
	return n.str, true
}

// Int returns n as an integer. Integral floats and numeric strings are
// accepted because text and binary saves disagree on the encoding of the
// same field.
func (n *Node) Int() (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.kind {
	case KindInteger:
		return n.num, true
	case KindFloat:
		if n.float == float64(int64(n.float)) {
			return int64(n.float), true
		}
	case KindString:
		if i, err := strconv.ParseInt(n.str, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Float returns n as a float; integers are widened.
func (n *Node) Float() (float64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.kind {
	case KindFloat:
		return n.float, true
	case KindInteger:
		return float64(n.num), true
	case KindString:
		if f, err := strconv.ParseFloat(n.str, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the payload of a boolean scalar. The strings yes and no are
// accepted as well.
func (n *Node) Bool() (bool, bool) {
	if n == nil {
		return false, false
	}
	switch n.kind {
	case KindBool:
		return n.flag, true
	case KindString:
		switch n.str {
		case "yes":
			return true, true
		case "no":
			return false, true
		}
	}
	return false, false
}

// Date returns n as a date. Binary saves store dates as integer hour counts,
// which are converted here.
func (n *Node) Date() (Date, bool) {
	if n == nil {
		return Date{}, false
	}
	switch n.kind {
	case KindDate:
		return n.date, true
	case KindInteger:
		return DateFromHours(n.num)
	case KindString:
		return ParseDate(n.str)
	}
	return Date{}, false
}

// Color returns the payload of a color scalar.
func (n *Node) Color() (Color, bool) {
	if n == nil || n.kind != KindColor {
		return Color{}, false
	}
	return n.color, true
}

// Text renders a scalar the way it would appear in a text save. Containers
// render as an empty string.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case KindString:
		return n.str
	case KindInteger:
		return strconv.FormatInt(n.num, 10)
	case KindFloat:
		return strconv.FormatFloat(n.float, 'f', -1, 64)
	case KindDate:
		return n.date.String()
	case KindBool:
		if n.flag {
			return "yes"
		}
		return "no"
	case KindColor:
		return n.color.String()
	}
	return ""
}

// Items returns the elements of a List, or the unkeyed values of an Object.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}
	return n.items
}

// Entries returns the raw key/value pairs of an Object in source order.
func (n *Node) Entries() []Entry {
	if n == nil {
		return nil
	}
	return n.entries
}

// Len returns the number of entries of an Object or items of a List.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	if n.kind == KindObject {
		return len(n.entries)
	}
	return len(n.items)
}

// Has reports whether an Object holds key at least once.
func (n *Node) Has(key string) bool {
	if n == nil {
		return false
	}
	_, ok := n.index[key]
	return ok
}

// Get returns the value stored under key. A key that repeats within the
// block yields a List of every value in insertion order.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindObject {
		return nil, false
	}
	pos, ok := n.index[key]
	if !ok {
		return nil, false
	}
	if len(pos) == 1 {
		return n.entries[pos[0]].Value, true
	}
	values := make([]*Node, len(pos))
	for i, p := range pos {
		values[i] = n.entries[p].Value
	}
	return List(values...), true
}

// Values returns every value stored under key in insertion order.
func (n *Node) Values(key string) []*Node {
	if n == nil || n.kind != KindObject {
		return nil
	}
	pos := n.index[key]
	values := make([]*Node, 0, len(pos))
	for _, p := range pos {
		values = append(values, n.entries[p].Value)
	}
	return values
}

// Path walks nested Objects by key, e.g. Path("dynasties", "dynasty_house").
func (n *Node) Path(keys ...string) (*Node, bool) {
	cur := n
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// AsList coerces n into a slice: a List yields its items, anything else is a
// single-element slice. Save files write one-element lists as bare scalars.
func (n *Node) AsList() []*Node {
	if n == nil {
		return nil
	}
	if n.kind == KindList {
		return n.items
	}
	return []*Node{n}
}

// GoString renders a compact debug form.
func (n *Node) GoString() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	n.debug(&sb)
	return sb.String()
}

func (n *Node) debug(sb *strings.Builder) {
	switch n.kind {
	case KindList:
		sb.WriteString("[")
		for i, it := range n.items {
			if i > 0 {
				sb.WriteString(" ")
			}
			it.debug(sb)
		}
		sb.WriteString("]")
	case KindObject:
		sb.WriteString("{")
		for i, e := range n.entries {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(e.Key)
			sb.WriteString("=")
			e.Value.debug(sb)
		}
		for _, it := range n.items {
			sb.WriteString(" ")
			it.debug(sb)
		}
		sb.WriteString("}")
	case KindString:
		sb.WriteString(strconv.Quote(n.str))
	default:
		sb.WriteString(n.Text())
	}
}
