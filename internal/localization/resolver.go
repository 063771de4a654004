// Package localization turns game localization keys into display text.
//
// Files are loaded from an ordered list of roots, lowest priority first, so
// a mod root listed after the base game overrides its keys.
package localization

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/fsutil"
)

// maxExpandDepth bounds nested `$key$` expansion.
const maxExpandDepth = 8

// readParallelism caps concurrent file reads per root.
const readParallelism = 8

// Resolver maps localization keys to text. It is read-only after Load.
type Resolver struct {
	data       map[string]string
	permissive bool
}

// New returns an empty resolver.
func New(permissive bool) *Resolver {
	return &Resolver{data: make(map[string]string), permissive: permissive}
}

// Load reads every root in order. A root without a
// `localization/<language>` directory contributes the `.yml` files placed
// directly inside it; a root that does not exist is skipped.
func Load(ctx context.Context, roots []string, language string, permissive bool) (*Resolver, error) {
	logger := ctxlog.FromContext(ctx)
	r := New(permissive)

	for _, root := range roots {
		files, err := localizationFiles(root, language)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn("Localization root not found, skipped.", "root", root)
				continue
			}
			return nil, fmt.Errorf("listing localization root %s: %w", root, err)
		}

		parsed := make([][]entry, len(files))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(readParallelism)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading localization file %s: %w", path, err)
				}
				entries, err := parseFile(data)
				if err != nil {
					return fmt.Errorf("parsing localization file %s: %w", path, err)
				}
				parsed[i] = entries
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		n := 0
		for _, entries := range parsed {
			for _, e := range entries {
				r.data[e.key] = e.value
			}
			n += len(entries)
		}
		logger.Debug("Localization root loaded.", "root", root, "files", len(files), "keys", n)
	}
	return r, nil
}

// localizationFiles lists the files of root in sorted order.
func localizationFiles(root, language string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	if dir := filepath.Join(root, "localization", language); fsutil.IsDir(dir) {
		return fsutil.FindFilesByExtension(dir, ".yml")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yml") {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	return files, nil
}

// Len returns the number of loaded keys.
func (r *Resolver) Len() int { return len(r.data) }

// Has reports whether key, or one of its aliases, is defined.
func (r *Resolver) Has(key string) bool {
	_, ok := r.raw(key)
	return ok
}

// raw looks key up directly, then as a trait (`trait_<key>`) and as a
// name (`<key>_name`), the two spellings the game uses for bare ids.
func (r *Resolver) raw(key string) (string, bool) {
	for _, k := range []string{key, "trait_" + key, key + "_name"} {
		if v, ok := r.data[k]; ok {
			return v, true
		}
	}
	return "", false
}

// Lookup returns the text of key without expanding references. A missing
// key is a *LocalizationError, or the key itself in permissive mode.
func (r *Resolver) Lookup(key string) (string, error) {
	if v, ok := r.raw(key); ok {
		return v, nil
	}
	if r.permissive {
		return key, nil
	}
	return "", &LocalizationError{Key: key}
}

// Localize returns the text of key with `$ref$` references and
// `[Function(arg)]` calls expanded.
func (r *Resolver) Localize(key string) (string, error) {
	return r.localize(key, 0)
}

func (r *Resolver) localize(key string, depth int) (string, error) {
	v, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	if depth >= maxExpandDepth {
		return v, nil
	}
	if strings.Contains(v, "$") {
		if v, err = r.expandRefs(v, depth); err != nil {
			return "", err
		}
	}
	if strings.Contains(v, "[") {
		v = expandCalls(v)
	}
	return v, nil
}

// expandRefs replaces each `$name$` with the localization of name. An
// unmatched '$' is kept as is.
func (r *Resolver) expandRefs(s string, depth int) (string, error) {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '$')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+1:], '$')
		if end < 0 {
			break
		}
		end += start + 1
		b.WriteString(s[:start])
		name := s[start+1 : end]
		sub, err := r.localize(name, depth+1)
		if err != nil {
			return "", fmt.Errorf("expanding $%s$: %w", name, err)
		}
		b.WriteString(sub)
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String(), nil
}
