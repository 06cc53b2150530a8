package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a tree document as HTML",
		Long: `Render a tree document as HTML.

Event listeners and the diff control attributes (key, skip, skip_criteria,
replace) are not part of the output.

Examples:
  vdiff render page.yaml
  vdiff render page.yaml --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}
			r := render.NewRenderer(render.RendererConfig{
				Pretty: pretty || a.cfg.Output.Pretty,
			})
			if err := r.RenderToWriter(a.out, tree); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out)
			return err
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}
