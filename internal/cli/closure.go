package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/feature"
)

// closureOpts holds the command-line flags for the closure command.
type closureOpts struct {
	downloadDir string // where remotely fetched artifacts land; overrides config
	noCache     bool   // bypass the artifact cache
	asJSON      bool   // emit machine-readable output
	showDesc    bool   // list discovered descriptors, not just coordinates
}

// closureCommand creates the closure command, the main entry point of the
// tool: it follows repository references transitively from the given
// descriptor files and prints every visited coordinate.
func (c *CLI) closureCommand() *cobra.Command {
	var opts closureOpts

	cmd := &cobra.Command{
		Use:   "closure [file...]",
		Short: "Resolve the transitive closure of feature descriptors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClosure(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.downloadDir, "download-dir", "", "directory to populate with downloaded artifacts (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit JSON output")
	cmd.Flags().BoolVar(&opts.showDesc, "descriptors", false, "list discovered descriptors as well")

	return cmd
}

func (c *CLI) runClosure(ctx context.Context, paths []string, opts *closureOpts) error {
	roots, err := readDescriptors(paths)
	if err != nil {
		return err
	}

	if opts.downloadDir != "" {
		c.Settings.DownloadDir = opts.downloadDir
	}
	resolver, err := c.newResolver(ctx, opts.noCache)
	if err != nil {
		return err
	}

	p := newProgress(c.Logger)
	visited := coord.NewSet()
	found, err := resolver.ResolveAll(ctx, roots, visited)
	if err != nil {
		printError("Closure resolution failed")
		return err
	}
	p.done(fmt.Sprintf("Resolved %d descriptors", len(found)))

	if opts.asJSON {
		return printClosureJSON(found, visited)
	}

	printSuccess("Closure of %d root descriptor(s): %d repository coordinate(s)", len(roots), visited.Len())
	for _, v := range visited.Values() {
		fmt.Println(v)
	}
	if opts.showDesc {
		printInfo("Discovered descriptors")
		for _, f := range found {
			printDetail("%s (%d repositories, %d features)", f.Name, len(f.Repository), len(f.Feature))
		}
	}
	return nil
}

// closureJSON is the machine-readable closure report.
type closureJSON struct {
	Visited     []string `json:"visited"`
	Descriptors []string `json:"descriptors"`
}

func printClosureJSON(found []*feature.Features, visited *coord.Set) error {
	out := closureJSON{Visited: visited.Values()}
	for _, f := range found {
		out.Descriptors = append(out.Descriptors, f.Name)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// readDescriptors loads every named descriptor file, failing on the first
// unreadable or malformed one.
func readDescriptors(paths []string) ([]*feature.Features, error) {
	roots := make([]*feature.Features, 0, len(paths))
	for _, p := range paths {
		f, err := feature.Read(p)
		if err != nil {
			return nil, err
		}
		roots = append(roots, f)
	}
	return roots, nil
}
