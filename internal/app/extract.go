package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vk/ck3graph/internal/config"
	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/decode"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/gamemap"
	"github.com/vk/ck3graph/internal/hierarchy"
	"github.com/vk/ck3graph/internal/localization"
	"github.com/vk/ck3graph/internal/node"
	"github.com/vk/ck3graph/internal/registry"
	"github.com/vk/ck3graph/internal/schema"
	"github.com/vk/ck3graph/internal/traverse"
)

const tracerName = "github.com/vk/ck3graph/internal/app"

// Extraction is everything produced from one save.
type Extraction struct {
	Format          decode.Format
	Registry        *registry.Registry
	Hierarchy       *hierarchy.Hierarchy
	Roots           []entityid.ID
	Traversals      []*traverse.Result
	Localization    *localization.Resolver
	Map             *gamemap.Definition
	SchemaErrors    []*schema.SchemaError
	ReferenceErrors []*registry.ReferenceError
}

// Extract runs the whole pipeline over a save body. dec overrides format
// detection; pass nil to pick the decoder from the data.
func Extract(ctx context.Context, data []byte, opts config.Options, dec decode.Decoder) (*Extraction, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "extract", trace.WithAttributes(attribute.Int("save.bytes", len(data))))
	defer span.End()

	ex, err := extract(ctx, data, opts, dec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return nil, err
	}
	return ex, nil
}

func extract(ctx context.Context, data []byte, opts config.Options, dec decode.Decoder) (*Extraction, error) {
	ex := &Extraction{}
	format, body := decode.Detect(data)
	ex.Format = format

	if dec == nil {
		var dopts decode.Options
		dopts.Permissive = opts.Permissive
		if format == decode.FormatBinary && opts.TokenDictionaryPath != "" {
			dict, err := decode.LoadDictionaryFile(opts.TokenDictionaryPath)
			if err != nil {
				return nil, err
			}
			dopts.Dictionary = dict
		}
		var err error
		if dec, body, err = decode.Select(ctx, data, dopts); err != nil {
			return nil, err
		}
	}

	var root *node.Node
	err := phase(ctx, "decode", func(ctx context.Context) (err error) {
		root, err = dec.Decode(ctx, body)
		return err
	})
	if err != nil {
		return nil, err
	}

	var recs *schema.Records
	err = phase(ctx, "map", func(ctx context.Context) (err error) {
		recs, err = schema.Map(ctx, root)
		return err
	})
	if err != nil {
		return nil, err
	}
	ex.SchemaErrors = recs.Errors

	err = phase(ctx, "resolve", func(ctx context.Context) error {
		b := registry.NewBuilder()
		if err := b.Populate(ctx, recs); err != nil {
			return err
		}
		reg, err := b.Build(ctx)
		if err != nil {
			return err
		}
		ex.Registry = reg
		ex.ReferenceErrors = reg.ReferenceErrors()
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = phase(ctx, "hierarchy", func(ctx context.Context) (err error) {
		ex.Hierarchy, err = hierarchy.Build(ctx, ex.Registry)
		return err
	})
	if err != nil {
		return nil, err
	}

	ex.Roots = traversalRoots(ex.Registry, opts.Roots)
	err = phase(ctx, "traverse", func(ctx context.Context) (err error) {
		ex.Traversals, err = traverse.Traverse(ctx, ex.Registry, ex.Roots, traverse.Options{
			MaxDepth:      opts.MaxDepth,
			ExpandLieges:  opts.ExpandLieges,
			ExpandVassals: opts.ExpandVassals,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	err = phase(ctx, "localization", func(ctx context.Context) (err error) {
		ex.Localization, err = localization.Load(ctx, opts.LocalizationRoots, opts.Language, opts.Permissive)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = phase(ctx, "map_data", func(ctx context.Context) (err error) {
		ex.Map, err = gamemap.Discover(ctx, opts.LocalizationRoots)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// traversalRoots returns the configured root characters, or the played
// characters when none are configured.
func traversalRoots(reg *registry.Registry, configured []uint32) []entityid.ID {
	var out []entityid.ID
	if len(configured) > 0 {
		for _, n := range configured {
			out = append(out, entityid.New(entityid.Character, n))
		}
		return out
	}
	for _, p := range reg.Players() {
		if p.Character.Bound() {
			out = append(out, p.Character.ID)
		}
	}
	return out
}

// phase runs fn inside a span named after the phase and logs its duration.
func phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "extract."+name)
	defer span.End()

	start := time.Now()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
		return fmt.Errorf("%s phase: %w", name, err)
	}
	ctxlog.FromContext(ctx).Debug("Phase complete.", "phase", name, "duration", time.Since(start))
	return nil
}
