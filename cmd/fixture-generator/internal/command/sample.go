package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	fixture "fixture-generator"
)

type sampleOptions struct {
	typeName    string
	args        []string
	seed        uint64
	count       int
	output      string
	diagnostics bool
}

func NewSampleCommand(cli *CLI, global *globalOptions) *cobra.Command {
	opts := &sampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample --type NAME",
		Short: "Generate values of a type",
		Long: "Generate one or more values of a catalog type and print them.\n" +
			"With --seed the output is reproducible; with --count the n-th value uses seed+n.",
		Example: "  fixture-generator sample --type store.Order --seed 42\n" +
			"  fixture-generator sample --type store.Page --arg store.Product --count 3 -o json\n" +
			"  fixture-generator sample --pkg ./warehouse --type warehouse.Order",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.count < 1 {
				return fmt.Errorf("--count must be positive, got %d", opts.count)
			}

			s, err := global.session(cmd.Context(), cli)
			if err != nil {
				return err
			}

			req, err := s.catalog.Request(opts.typeName, opts.args)
			if err != nil {
				return err
			}

			results := make([]*fixture.Result, opts.count)

			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))

			for i := range results {
				seed := opts.seed
				if seed != 0 {
					seed += uint64(i)
				}

				g.Go(func() error {
					res, err := s.generator.Generate(req, &s.settings, s.registry, seed)
					if err != nil {
						return err
					}

					results[i] = res

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			values := make([]any, 0, len(results))
			for _, res := range results {
				cli.Log.Info("Generated", "type", opts.typeName, "seed", res.Seed, "nodes", res.Graph.Len())
				if opts.diagnostics {
					cli.PrintDiagnostics(res.Diagnostics)
				}

				values = append(values, res.Value)
			}

			if len(values) == 1 {
				return encode(cli.Out, opts.output, values[0])
			}

			return encode(cli.Out, opts.output, values)
		},
	}

	cmd.Flags().StringVarP(&opts.typeName, "type", "t", "", "Catalog type name (see the types command)")
	cmd.Flags().StringSliceVar(&opts.args, "arg", nil, "Type arguments of a generic shape")
	cmd.Flags().Uint64Var(&opts.seed, "seed", envSeed(), "Seed, 0 derives one per value")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "Number of values to generate")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "Output format. One of: (yaml | json)")
	cmd.Flags().BoolVar(&opts.diagnostics, "diagnostics", true, "Print recovered events to stderr")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func envSeed() uint64 {
	seed, err := strconv.ParseUint(os.Getenv(EnvSeed), 10, 64)
	if err != nil {
		return 0
	}

	return seed
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
