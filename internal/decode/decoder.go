package decode

import (
	"bytes"
	"context"
	"strconv"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/node"
)

// Decoder turns save bytes into a node tree. Implementations must return a
// *ParseError for malformed input.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*node.Node, error)
}

// Format is the encoding of a save body.
type Format int

const (
	FormatText Format = iota
	FormatBinary
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "text"
}

// Options configures decoder selection.
type Options struct {
	// Dictionary resolves binary token ids. Required for binary input.
	Dictionary TokenDictionary
	// Permissive substitutes placeholders for unknown binary tokens.
	Permissive bool
}

// sniffLen is how many leading bytes are inspected for binary control bytes.
const sniffLen = 64

// Detect inspects data and reports its format together with the body that
// follows any `SAV` header line.
//
// A header's type field decides directly: even types are text, odd types
// binary. Without a header, a body that starts with `<u16 id> 0x0001` (a key
// followed by the binary equals token) or carries control bytes early on is
// binary; everything else is text.
func Detect(data []byte) (Format, []byte) {
	if body, typ, ok := splitHeader(data); ok {
		if typ%2 == 1 {
			return FormatBinary, body
		}
		return FormatText, body
	}
	if len(data) >= 4 && data[2] == 0x01 && data[3] == 0x00 {
		return FormatBinary, data
	}
	limit := min(len(data), sniffLen)
	for _, c := range data[:limit] {
		if c < 0x09 {
			return FormatBinary, data
		}
	}
	return FormatText, data
}

// splitHeader recognizes `SAV<version:2 hex><type:2 hex>...\n`.
func splitHeader(data []byte) ([]byte, int, bool) {
	if !bytes.HasPrefix(data, []byte("SAV")) || len(data) < 7 {
		return nil, 0, false
	}
	nl := bytes.IndexByte(data[:min(len(data), 128)], '\n')
	if nl < 0 {
		return nil, 0, false
	}
	typ, err := strconv.ParseUint(string(data[5:7]), 16, 8)
	if err != nil {
		return nil, 0, false
	}
	return data[nl+1:], int(typ), true
}

// Select picks the decoder for data and returns it with the header-free body.
func Select(ctx context.Context, data []byte, opts Options) (Decoder, []byte, error) {
	format, body := Detect(data)
	ctxlog.FromContext(ctx).Debug("Save format detected.", "format", format.String(), "header_bytes", len(data)-len(body))
	if format == FormatBinary {
		if opts.Dictionary == nil {
			return nil, nil, ErrNoDictionary
		}
		return NewBinary(opts.Dictionary, opts.Permissive), body, nil
	}
	return NewText(), body, nil
}
