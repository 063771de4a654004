package gamemap

import (
	"context"

	"github.com/vk/ck3graph/internal/ctxlog"
)

// Discover returns the map definition of the first root, in the order
// given, that carries a complete and readable one. roots use the same order
// as localization, but here the first match wins and later roots are not
// consulted. When no root qualifies it returns nil and map features stay
// off.
func Discover(ctx context.Context, roots []string) (*Definition, error) {
	logger := ctxlog.FromContext(ctx)
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := complete(root); err != nil {
			logger.Debug("No map data in root.", "root", root, "reason", err)
			continue
		}
		d, err := load(ctx, root)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Map data unreadable, trying next root.", "root", root, "error", err)
			continue
		}
		logger.Info("Map data found.", "root", root, "provinces", len(d.Provinces), "baronies", len(d.Baronies))
		return d, nil
	}
	logger.Info("No map data found, map features disabled.", "roots", len(roots))
	return nil, nil
}
