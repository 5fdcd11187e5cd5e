package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/feature"
)

// coordsCommand creates the coords command. It flattens the given descriptor
// files into their referenced coordinates without following repositories.
func (c *CLI) coordsCommand() *cobra.Command {
	var reposOnly, asJSON bool

	cmd := &cobra.Command{
		Use:   "coords [file...]",
		Short: "List the coordinates referenced by feature descriptors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := readDescriptors(args)
			if err != nil {
				return err
			}

			var set *coord.Set
			if reposOnly {
				set, err = feature.RepositoryCoordsAll(roots)
			} else {
				set, err = feature.CoordsAll(roots)
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(set.Values())
			}
			for _, v := range set.Values() {
				fmt.Println(v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reposOnly, "repos-only", false, "list repository references only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON output")

	return cmd
}
