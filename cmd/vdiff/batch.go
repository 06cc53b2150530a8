package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

func batchCmd(a *app) *cobra.Command {
	var (
		asJSON      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch OLD:NEW...",
		Short: "Diff many independent tree pairs concurrently",
		Long: `Diff many independent tree pairs concurrently.

Each argument names an old and a new document separated by a colon.
Results are printed in argument order. The first failure stops the batch.

Examples:
  vdiff batch a1.yaml:a2.yaml b1.yaml:b2.yaml
  vdiff batch pages/*.pair --concurrency=8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parsePairs(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				if concurrency < 1 {
					return usageError("--concurrency must be at least 1, got %d", concurrency)
				}
				a.cfg.Batch.Concurrency = concurrency
			}
			return a.runBatch(cmd.Context(), pairs, a.jsonOutput(asJSON))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Number of diffs run at once (default from config)")

	return cmd
}

type pair struct {
	old, new string
}

// parsePairs splits each "old:new" argument at its first colon.
func parsePairs(args []string) ([]pair, error) {
	pairs := make([]pair, len(args))
	for i, arg := range args {
		oldPath, newPath, ok := strings.Cut(arg, ":")
		if !ok || oldPath == "" || newPath == "" {
			return nil, usageError("argument %q is not of the form OLD:NEW", arg)
		}
		pairs[i] = pair{old: oldPath, new: newPath}
	}
	return pairs, nil
}

func (a *app) runBatch(ctx context.Context, pairs []pair, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	diff := a.diffFunc()
	results := make([][]vdom.Patch, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Batch.Concurrency)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			prev, err := a.loader.Load(p.old)
			if err != nil {
				return err
			}
			next, err := a.loader.Load(p.new)
			if err != nil {
				return err
			}
			patches, err := diff(ctx, prev, next)
			if err != nil {
				return fmt.Errorf("%s: %w", p.old, err)
			}
			results[i] = patches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if asJSON {
		r := render.NewRenderer(render.RendererConfig{})
		out := make([]diffResult, len(pairs))
		for i, p := range pairs {
			jp, err := toJSONPatches(r, results[i])
			if err != nil {
				return err
			}
			out[i] = diffResult{Old: p.old, New: p.new, Patches: jp}
		}
		return writeJSON(a.out, out)
	}

	total := 0
	for i, p := range pairs {
		n := len(results[i])
		total += n
		fmt.Fprintf(a.out, "%s -> %s: %s\n", p.old, p.new,
			countColor(n).Sprintf("%d %s", n, plural(n, "patch", "patches")))
	}
	fmt.Fprintln(a.out, faint.Sprintf("%d pairs, %d patches", len(pairs), total))
	return nil
}

func countColor(n int) *color.Color {
	if n == 0 {
		return faint
	}
	return replaceColor
}
