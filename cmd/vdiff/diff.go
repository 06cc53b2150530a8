package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/dom"
	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

func diffCmd(a *app) *cobra.Command {
	var (
		asJSON     bool
		html       bool
		applyCheck bool
		maxDepth   int
	)

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the patches that turn OLD into NEW",
		Long: `Diff two tree documents and print the patches.

Paths in the patches address nodes of OLD.

Examples:
  vdiff diff old.yaml new.yaml
  vdiff diff old.yaml new.yaml --json
  vdiff diff old.yaml new.yaml --html
  vdiff diff old.yaml new.yaml --apply-check --max-depth=4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-depth") {
				if maxDepth < 0 {
					return usageError("--max-depth must not be negative, got %d", maxDepth)
				}
				a.cfg.Diff.MaxDepth = maxDepth
			}
			return a.runDiff(cmd.Context(), args[0], args[1], diffOptions{
				json:       a.jsonOutput(asJSON),
				html:       html,
				applyCheck: applyCheck,
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print patches as JSON")
	cmd.Flags().BoolVar(&html, "html", false, "Also print a line diff of the rendered HTML")
	cmd.Flags().BoolVar(&applyCheck, "apply-check", false, "Apply the patches to OLD and verify the result equals NEW")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Stop comparing below this depth (default from config, 0 = unlimited)")

	return cmd
}

type diffOptions struct {
	json       bool
	html       bool
	applyCheck bool
}

// diffResult is the JSON form of one diff.
type diffResult struct {
	Old        string      `json:"old"`
	New        string      `json:"new"`
	Patches    []jsonPatch `json:"patches"`
	ApplyCheck *bool       `json:"apply_check,omitempty"`
	HTMLDiff   string      `json:"html_diff,omitempty"`
}

func (a *app) runDiff(ctx context.Context, oldPath, newPath string, opts diffOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	prev, err := a.loader.Load(oldPath)
	if err != nil {
		return err
	}
	next, err := a.loader.Load(newPath)
	if err != nil {
		return err
	}

	patches, err := a.diffFunc()(ctx, prev, next)
	if err != nil {
		return err
	}

	var checkErr error
	if opts.applyCheck {
		checkErr = applyCheck(prev, next, patches)
	}

	var htmlDiff string
	if opts.html {
		if htmlDiff, err = renderedDiff(prev, next); err != nil {
			return err
		}
	}

	if opts.json {
		r := render.NewRenderer(render.RendererConfig{})
		jp, err := toJSONPatches(r, patches)
		if err != nil {
			return err
		}
		res := diffResult{Old: oldPath, New: newPath, Patches: jp, HTMLDiff: htmlDiff}
		if opts.applyCheck {
			ok := checkErr == nil
			res.ApplyCheck = &ok
		}
		if err := writeJSON(a.out, res); err != nil {
			return err
		}
		return checkErr
	}

	printPatches(a.out, patches)
	if opts.applyCheck && checkErr == nil {
		fmt.Fprintln(a.out, insertColor.Sprint("apply check: ok"))
	}
	if opts.html {
		fmt.Fprintln(a.out)
		writeLineDiff(a.out, htmlDiff)
	}
	return checkErr
}

// applyCheck applies patches to a document mounted from prev and verifies
// that the result equals next.
func applyCheck(prev, next vdom.Node, patches []vdom.Patch) error {
	doc := dom.Mount(prev)
	if err := doc.Apply(patches); err != nil {
		return err
	}
	if !vdom.Equal(doc.Snapshot(), next) {
		return errors.New("E203").
			WithDetail("Applying the patches to the old tree did not reproduce the new tree")
	}
	return nil
}

// renderedDiff renders both trees as pretty HTML and returns a unified
// line diff, each line prefixed with "+", "-" or " ".
func renderedDiff(prev, next vdom.Node) (string, error) {
	r := render.NewRenderer(render.RendererConfig{Pretty: true})
	before, err := r.RenderToString(prev)
	if err != nil {
		return "", err
	}
	after, err := r.RenderToString(next)
	if err != nil {
		return "", err
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before+"\n", after+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String(), nil
}

func writeLineDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		var c *color.Color
		switch line[0] {
		case '+':
			c = insertColor
		case '-':
			c = removeColor
		}
		if c == nil {
			fmt.Fprint(w, line)
			continue
		}
		fmt.Fprint(w, c.Sprint(strings.TrimSuffix(line, "\n")), "\n")
	}
}
