package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/ck3graph/internal/entityid"
)

// WriteSummary prints a human readable overview of ex.
func WriteSummary(w io.Writer, source string, ex *Extraction) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	meta := ex.Registry.Meta()

	fmt.Fprintf(tw, "Save:\t%s (%s)\n", source, ex.Format)
	if meta.Version != "" {
		fmt.Fprintf(tw, "Version:\t%s\n", meta.Version)
	}
	if !meta.Date.IsZero() {
		fmt.Fprintf(tw, "Date:\t%s\n", meta.Date)
	}
	if meta.PlayerName != "" {
		fmt.Fprintf(tw, "Player:\t%s\n", meta.PlayerName)
	}

	fmt.Fprintln(tw, "\nEntities:")
	for _, k := range entityid.Kinds {
		fmt.Fprintf(tw, "  %s\t%d\n", k, ex.Registry.Len(k))
	}

	fmt.Fprintln(tw, "\nTraversals:")
	if len(ex.Traversals) == 0 {
		fmt.Fprintln(tw, "  none")
	}
	for _, res := range ex.Traversals {
		name := res.Root.String()
		if e, ok := ex.Registry.Lookup(res.Root); ok {
			name = fmt.Sprintf("%s (%s)", e.DisplayName(), res.Root)
		}
		expanded := 0
		for _, v := range res.Visits {
			if v.Expanded {
				expanded++
			}
		}
		fmt.Fprintf(tw, "  %s\t%d visited, %d expanded\n", name, len(res.Visits), expanded)
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Title roots:\t%d de jure, %d de facto\n", len(ex.Hierarchy.DeJure.Roots()), len(ex.Hierarchy.DeFacto.Roots()))
	fmt.Fprintf(tw, "Localization keys:\t%d\n", ex.Localization.Len())
	if ex.Map != nil {
		fmt.Fprintf(tw, "Map data:\t%s (%d provinces)\n", ex.Map.Root, len(ex.Map.Provinces))
	} else {
		fmt.Fprintln(tw, "Map data:\tdisabled")
	}
	fmt.Fprintf(tw, "Schema errors:\t%d\n", len(ex.SchemaErrors))
	fmt.Fprintf(tw, "Reference errors:\t%d\n", len(ex.ReferenceErrors))
	return tw.Flush()
}
