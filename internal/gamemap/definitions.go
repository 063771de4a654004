package gamemap

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/ck3graph/internal/decode"
	"github.com/vk/ck3graph/internal/fsutil"
	"github.com/vk/ck3graph/internal/node"
)

// readDefinitions parses definition.csv: `id;r;g;b;name;x`. Rows whose id
// is not a number, such as the header, are skipped. A malformed colour is
// an error.
func readDefinitions(r io.Reader) (map[uint32]Province, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := make(map[uint32]Province)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 4 {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")), 10, 32)
		if err != nil {
			continue
		}
		p := Province{ID: uint32(id)}
		for i := 0; i < 3; i++ {
			c, err := strconv.ParseUint(strings.TrimSpace(rec[i+1]), 10, 8)
			if err != nil {
				return nil, fmt.Errorf("province %d: bad colour component %q", id, rec[i+1])
			}
			p.Color[i] = uint8(c)
		}
		if len(rec) > 4 {
			p.Name = rec[4]
		}
		out[p.ID] = p
	}
}

// readBaronies decodes every landed title file under dir and records the
// title owning each `province = N`.
func readBaronies(ctx context.Context, dir string) (map[uint32]string, error) {
	files, err := fsutil.FindFilesByExtension(dir, landedTitlesExt)
	if err != nil {
		return nil, err
	}

	out := make(map[uint32]string)
	dec := decode.NewText()
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		root, err := dec.Decode(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		collectProvinces(root, out)
	}
	return out, nil
}

func collectProvinces(n *node.Node, out map[uint32]string) {
	for _, e := range n.Entries() {
		v := e.Value
		if v.Kind() != node.KindObject {
			continue
		}
		// A doubled `province` key yields several values; the first wins.
		if ps := v.Values("province"); len(ps) > 0 {
			if id, ok := ps[0].Int(); ok && id >= 0 {
				out[uint32(id)] = e.Key
			}
		}
		collectProvinces(v, out)
	}
}
