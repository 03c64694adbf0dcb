package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewTypesCommand(cli *CLI, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the types that can be generated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.session(cmd.Context(), cli)
			if err != nil {
				return err
			}

			var goTypes, shapes []Entry
			for _, e := range s.catalog.Entries() {
				if e.Shape {
					shapes = append(shapes, e)
				} else {
					goTypes = append(goTypes, e)
				}
			}

			fmt.Fprintln(cli.Out, Highlight("Go types:"))
			for _, e := range goTypes {
				fmt.Fprintf(cli.Out, "  %-24s %d fields\n", e, e.Fields)
			}

			fmt.Fprintln(cli.Out, Highlight("Shapes:"))
			for _, e := range shapes {
				fmt.Fprintf(cli.Out, "  %-24s %d fields\n", e, e.Fields)
			}

			return nil
		},
	}
}
