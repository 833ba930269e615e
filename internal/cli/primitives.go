package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/svgfx/scene"
)

func (c *CLI) primitivesCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "primitives",
		Short: "List the filter primitive types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range scene.PrimitiveTypes() {
				fmt.Fprintln(out, name)
			}
			if all {
				for _, name := range scene.PassthroughTypes() {
					fmt.Fprintf(out, "%s (passthrough)\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include recognized types that pass their input through")

	return cmd
}
