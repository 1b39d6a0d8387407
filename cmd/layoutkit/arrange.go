package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/grindlemire/go-layoutkit/internal/debug"
	"github.com/grindlemire/go-layoutkit/internal/inspector"
	"github.com/grindlemire/go-layoutkit/internal/treefile"
	"github.com/spf13/cobra"
)

// bounds are the --width and --height flags shared by commands that lay out
// a tree.
type bounds struct {
	width, height float64
}

func (b *bounds) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&b.width, "width", 320, "width of the root rectangle")
	cmd.Flags().Float64Var(&b.height, "height", 480, "height of the root rectangle")
}

func (b bounds) rect() layoutkit.Rect {
	return layoutkit.NewRect(0, 0, b.width, b.height)
}

func arrangeCmd(_ *globals) *cobra.Command {
	var (
		b      bounds
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "arrange <tree.yaml>",
		Short: "Measure and arrange a tree and print every frame",
		Long: `Measure and arrange a tree without creating views. Frames are printed
in the root's coordinate space, one node per line in pre-order. With
--json the tree is printed with frames relative to each parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := treefile.Load(args[0])
			if err != nil {
				return err
			}
			root, err := doc.Build()
			if err != nil {
				return err
			}

			arr := layoutkit.ArrangeWithin(root, b.rect())
			debug.Log("arranged %s: %d nodes in %gx%g", args[0], arr.Count(), b.width, b.height)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(inspector.Snapshot(&arr))
			}
			printFrames(cmd.OutOrStdout(), &arr)
			return nil
		},
	}

	b.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the arrangement as JSON")
	return cmd
}

func printFrames(w io.Writer, arr *layoutkit.Arrangement) {
	for _, f := range arr.Flatten() {
		fmt.Fprintf(w, "%s%s (%g,%g %gx%g)\n",
			strings.Repeat("  ", len(f.Path)), nodeLabel(f.Layout),
			f.Frame.X, f.Frame.Y, f.Frame.Width, f.Frame.Height)
	}
}

func nodeLabel(l layoutkit.Layout) string {
	if l == nil {
		return "-"
	}
	label := "-"
	if l.NeedsView() {
		label = l.ViewType()
	}
	if id := l.ViewReuseID(); id != "" {
		label += "/" + id
	}
	return label
}
