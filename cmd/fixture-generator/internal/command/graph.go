package command

import (
	"github.com/spf13/cobra"
)

type graphOptions struct {
	typeName string
	args     []string
	detailed bool
}

func NewGraphCommand(cli *CLI, global *globalOptions) *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph --type NAME",
		Short: "Print the node tree of a type",
		Long: "Print every structural position of a type: members, container elements,\n" +
			"and the positions where cycles or the depth limit terminate the tree.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.session(cmd.Context(), cli)
			if err != nil {
				return err
			}

			req, err := s.catalog.Request(opts.typeName, opts.args)
			if err != nil {
				return err
			}

			g, err := s.generator.Graph(req, &s.settings, s.registry)
			if err != nil {
				return err
			}

			if opts.detailed {
				g.DumpDetailed(cli.Out)
				return nil
			}

			return g.Dump(cli.Out)
		},
	}

	cmd.Flags().StringVarP(&opts.typeName, "type", "t", "", "Catalog type name (see the types command)")
	cmd.Flags().StringSliceVar(&opts.args, "arg", nil, "Type arguments of a generic shape")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "Dump every node with its signature and Go type")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
