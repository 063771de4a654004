package decode

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/node"
)

// Fixed token ids of the binary encoding.
const (
	idEqual    uint16 = 0x0001
	idOpen     uint16 = 0x0003
	idClose    uint16 = 0x0004
	idI32      uint16 = 0x000c
	idF32      uint16 = 0x000d
	idBool     uint16 = 0x000e
	idQuoted   uint16 = 0x000f
	idU32      uint16 = 0x0014
	idUnquoted uint16 = 0x0017
	idF64      uint16 = 0x0167
	idRGB      uint16 = 0x0243
	idU64      uint16 = 0x029c
	idI64      uint16 = 0x0317
)

// BinaryDecoder decodes the token encoding of the save grammar.
type BinaryDecoder struct {
	dict       TokenDictionary
	permissive bool
}

// NewBinary returns a binary decoder resolving names through dict. In
// permissive mode an id missing from dict decodes to a placeholder word
// instead of failing.
func NewBinary(dict TokenDictionary, permissive bool) *BinaryDecoder {
	return &BinaryDecoder{dict: dict, permissive: permissive}
}

// Decode parses data into an Object node holding the top-level sections.
func (d *BinaryDecoder) Decode(ctx context.Context, data []byte) (*node.Node, error) {
	logger := ctxlog.FromContext(ctx)
	if d.dict == nil {
		return nil, ErrNoDictionary
	}
	logger.Debug("Binary decoding started.", "bytes", len(data), "permissive", d.permissive)

	lex := &binaryLexer{data: data, dict: d.dict, permissive: d.permissive, unknown: make(map[uint16]int)}
	root, err := buildTree(ctx, lex)
	if err != nil {
		return nil, err
	}
	for id, n := range lex.unknown {
		logger.Warn("Unknown binary token replaced by placeholder.", "token", fmt.Sprintf("0x%04x", id), "occurrences", n)
	}
	logger.Debug("Binary decoding complete.", "sections", root.Len())
	return root, nil
}

// Placeholder returns the word substituted for an unknown token id.
func Placeholder(id uint16) string {
	return fmt.Sprintf("__unknown_0x%04x", id)
}

type binaryLexer struct {
	data       []byte
	pos        int
	dict       TokenDictionary
	permissive bool
	unknown    map[uint16]int
}

func (l *binaryLexer) position() Position {
	return Position{Offset: l.pos}
}

func (l *binaryLexer) take(n int, start Position, what string) ([]byte, error) {
	if l.pos+n > len(l.data) {
		return nil, newError(TruncatedInput, start, "need %d bytes for %s, %d left", n, what, len(l.data)-l.pos)
	}
	b := l.data[l.pos : l.pos+n]
	l.pos += n
	return b, nil
}

func (l *binaryLexer) next() (token, error) {
	pos := l.position()
	if l.pos >= len(l.data) {
		return token{kind: tokEOF, pos: pos}, nil
	}
	raw, err := l.take(2, pos, "token id")
	if err != nil {
		return token{}, err
	}
	id := binary.LittleEndian.Uint16(raw)

	scalar := func(n *node.Node) (token, error) {
		return token{kind: tokScalar, value: n, pos: pos}, nil
	}

	switch id {
	case idEqual:
		return token{kind: tokEqual, pos: pos}, nil
	case idOpen:
		return token{kind: tokOpen, pos: pos}, nil
	case idClose:
		return token{kind: tokClose, pos: pos}, nil
	case idI32:
		b, err := l.take(4, pos, "i32")
		if err != nil {
			return token{}, err
		}
		return scalar(node.Int(int64(int32(binary.LittleEndian.Uint32(b)))))
	case idU32:
		b, err := l.take(4, pos, "u32")
		if err != nil {
			return token{}, err
		}
		return scalar(node.Int(int64(binary.LittleEndian.Uint32(b))))
	case idF32:
		b, err := l.take(4, pos, "f32")
		if err != nil {
			return token{}, err
		}
		return scalar(node.Float(float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))))
	case idF64:
		b, err := l.take(8, pos, "f64")
		if err != nil {
			return token{}, err
		}
		return scalar(node.Float(math.Float64frombits(binary.LittleEndian.Uint64(b))))
	case idI64:
		b, err := l.take(8, pos, "i64")
		if err != nil {
			return token{}, err
		}
		return scalar(node.Int(int64(binary.LittleEndian.Uint64(b))))
	case idU64:
		b, err := l.take(8, pos, "u64")
		if err != nil {
			return token{}, err
		}
		v := binary.LittleEndian.Uint64(b)
		if v > math.MaxInt64 {
			return scalar(node.String(strconv.FormatUint(v, 10)))
		}
		return scalar(node.Int(int64(v)))
	case idBool:
		b, err := l.take(1, pos, "bool")
		if err != nil {
			return token{}, err
		}
		return scalar(node.Bool(b[0] != 0))
	case idQuoted, idUnquoted:
		lb, err := l.take(2, pos, "string length")
		if err != nil {
			return token{}, err
		}
		s, err := l.take(int(binary.LittleEndian.Uint16(lb)), pos, "string body")
		if err != nil {
			return token{}, err
		}
		return scalar(node.String(string(s)))
	case idRGB:
		return token{kind: tokScalar, value: node.String("rgb"), colorModel: node.RGB, pos: pos}, nil
	}

	if name, ok := l.dict.Lookup(id); ok {
		return scalar(node.String(name))
	}
	if !l.permissive {
		return token{}, newError(UnknownBinaryToken, pos, "token 0x%04x is not in the dictionary", id)
	}
	l.unknown[id]++
	return scalar(node.String(Placeholder(id)))
}
