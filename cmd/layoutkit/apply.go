package main

import (
	"fmt"
	"io"

	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/grindlemire/go-layoutkit/internal/treefile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func applyCmd(g *globals) *cobra.Command {
	var (
		b      bounds
		passes int
	)

	cmd := &cobra.Command{
		Use:   "apply <tree.yaml>",
		Short: "Run a tree through the pipeline and print the resulting views",
		Long: `Run the tree through the full pipeline against a headless window:
measure and arrange on a worker, then match, build, configure and place
views on the UI loop. Each pass after the first reuses the views of the
one before it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passes < 1 {
				return fmt.Errorf("--passes must be at least 1")
			}
			doc, err := treefile.Load(args[0])
			if err != nil {
				return err
			}

			s, err := startSession(g.cfg, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			for i := 1; i <= passes; i++ {
				root, err := doc.Build()
				if err != nil {
					return err
				}
				result, err := s.pipeline.Submit(ctx, root, b.rect()).Wait(ctx)
				if err != nil {
					return err
				}
				printResult(out, i, result)
				if result.Outcome != layoutkit.PassApplied {
					if result.Err != nil {
						return fmt.Errorf("pass %d %s: %w", i, result.Outcome, result.Err)
					}
					return fmt.Errorf("pass %d %s", i, result.Outcome)
				}
			}

			tree, err := s.dump(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(out, tree)
			return nil
		},
	}

	b.register(cmd)
	cmd.Flags().IntVarP(&passes, "passes", "n", 1, "number of passes to run")
	return cmd
}

func printResult(w io.Writer, n int, r layoutkit.PassResult) {
	fmt.Fprintf(w, "pass %d: %s built=%d reused=%d torn_down=%d\n",
		n, r.Outcome, r.Report.Built, r.Report.Reused, r.Report.TornDown)
	for _, e := range r.Report.Errors {
		fmt.Fprintf(w, "  warning: %v\n", e)
	}
}
