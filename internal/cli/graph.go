package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output  string // output file path; empty derives from the first input
	format  string // "dot" or "svg"
	noCache bool
}

// graphCommand creates the graph command. It resolves the closure of the
// given descriptors while recording the repository reference graph, and
// renders it as DOT or SVG.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "graph [file...]",
		Short: "Render the repository reference graph of feature descriptors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return c.runGraph(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from the first input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, paths []string, opts *graphOpts) error {
	roots, err := readDescriptors(paths)
	if err != nil {
		return err
	}

	resolver, err := c.newResolver(ctx, opts.noCache)
	if err != nil {
		return err
	}

	g := render.NewGraph(roots)
	resolver = resolver.WithHooks(g.Hooks())

	p := newProgress(c.Logger)
	if _, err := resolver.ResolveAll(ctx, roots, coord.NewSet()); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Traversed %d descriptors, %d references", g.NodeCount(), g.EdgeCount()))

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(g.ToDOT())
	case formatSVG:
		data, err = g.RenderSVG(ctx)
		if err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(paths[0], filepath.Ext(paths[0])) + "." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered repository graph")
	printFile(path)
	return nil
}
