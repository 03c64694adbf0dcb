package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	fixture "fixture-generator"
	"fixture-generator/internal/analyze"
	"fixture-generator/selector"
	"fixture-generator/settings"
	"fixture-generator/typesig"
)

// Environment variables providing flag defaults, typically from .env.
const (
	EnvSettings  = "FIXTURE_SETTINGS"
	EnvOverrides = "FIXTURE_OVERRIDES"
	EnvLog       = "FIXTURE_LOG"
	EnvSeed      = "FIXTURE_SEED"
)

type globalOptions struct {
	settings  string
	overrides string
	pkgs      []string
	logLevel  string
}

func NewRootCommand(cli *CLI) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "fixture-generator",
		Short: "Generate populated sample values of Go types and declared shapes",
		Long: Highlight("Usage: fixture-generator [global options] <subcommand> [args]") + "\n\n" +
			"fixture-generator populates values of the catalog types (or of any package\n" +
			"loaded with --pkg) from a seed, so the same seed reproduces the same value.\n" +
			"Overrides files pin, filter, nullify or skip values by path.\n",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.SetLogLevel(opts.logLevel)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(cli.Out)
	cmd.SetErr(cli.Err)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.settings, "settings", os.Getenv(EnvSettings), "Settings YAML file")
	flags.StringVar(&opts.overrides, "overrides", os.Getenv(EnvOverrides), "Overrides YAML file")
	flags.StringSliceVar(&opts.pkgs, "pkg", nil, "Go package patterns to load types from (e.g. ./store)")
	flags.StringVar(&opts.logLevel, "log-level", os.Getenv(EnvLog), "Log level. One of: (silent | error | info | debug | trace)")

	cmd.AddCommand(
		NewSampleCommand(cli, opts),
		NewGraphCommand(cli, opts),
		NewTypesCommand(cli, opts),
	)

	return cmd
}

func setUsageTemplate(cmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleHeading", color.New(color.FgCyan, color.Bold).SprintFunc())

	usage := strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(cmd.UsageTemplate())
	cmd.SetUsageTemplate(usage)
}

func Execute() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}

	cli := NewCLI(os.Stdout, os.Stderr)
	root := NewRootCommand(cli)
	setUsageTemplate(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(cli.Err, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// session is everything a request needs, assembled from the global options.
type session struct {
	generator *fixture.Generator
	catalog   *Catalog
	settings  settings.Settings
	registry  *selector.Registry
}

func (o *globalOptions) session(ctx context.Context, cli *CLI) (*session, error) {
	s := &session{settings: settings.Defaults(), catalog: BuiltinCatalog(), registry: selector.NewRegistry()}

	if o.settings != "" {
		cfg, err := settings.LoadFile(o.settings)
		if err != nil {
			return nil, err
		}

		s.settings = cfg
	}

	if len(o.pkgs) > 0 {
		loader := &analyze.Loader{Log: cli.Log.WithName("analyze")}

		loaded, err := loader.Load(ctx, o.pkgs...)
		if err != nil {
			return nil, err
		}

		s.catalog.Merge(loaded)
	}

	u := typesig.NewUniverse()
	if err := s.catalog.Register(u); err != nil {
		return nil, fmt.Errorf("failed to register catalog: %w", err)
	}

	if o.overrides != "" {
		ov, err := LoadOverrides(o.overrides)
		if err != nil {
			return nil, err
		}

		if s.registry, err = ov.Registry(); err != nil {
			return nil, fmt.Errorf("invalid overrides %s: %w", o.overrides, err)
		}
	}

	s.generator = fixture.NewGenerator(fixture.WithUniverse(u), fixture.WithLogger(cli.Log.WithName("fixture")))

	return s, nil
}
