package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/archmap/archmap/pkg/config"
	"github.com/archmap/archmap/pkg/generator"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	configPath string   // config file path (--config)
	sources    []string // metadata source roots, repeatable (--source)
	target     string   // output directory, empty keeps results in memory (--target)
	visualize  bool     // render an image artifact per diagram (--visualize)
	backend    string   // renderer backend: plantuml or graphviz (--renderer)
	serverURL  string   // PlantUML server base URL (--plantuml-server)
	external   string   // display name for calls leaving the system (--external-service)
	refresh    bool     // bypass cached artifacts (--refresh)
	noCache    bool     // disable caching entirely (--no-cache)
	outputKey  string   // print one diagram's text to stdout (--output)
}

// merge layers explicit flag values over the file configuration. Flags the
// user did not set keep the configured values.
func (f *generateFlags) merge(cmd *cobra.Command, cfg *config.Config) {
	if len(f.sources) > 0 {
		cfg.Sources.Roots = f.sources
	}
	if cmd.Flags().Changed("target") {
		cfg.Output.TargetDir = f.target
	}
	if cmd.Flags().Changed("visualize") {
		cfg.Output.Visualize = f.visualize
	}
	if cmd.Flags().Changed("renderer") {
		cfg.Render.Backend = f.backend
	}
	if cmd.Flags().Changed("plantuml-server") {
		cfg.Render.PlantumlServer = f.serverURL
	}
	if cmd.Flags().Changed("external-service") {
		cfg.Diagram.ExternalService = f.external
	}
}

// generateCommand creates the generate command, the main entry point for
// producing diagrams.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate architecture diagrams from service metadata",
		Long: `Generate architecture diagrams from service metadata.

The generate command scans the source directories for project and API
metadata files, derives the call dependencies between services, and produces
PlantUML diagram text at module, component, system and service granularity.

With --target the diagram text is written below the target directory under
txt/. Adding --visualize renders an image artifact for every diagram into a
per-format directory such as svg/. Without --target results stay in memory
and a summary is printed; --output prints one diagram's text to stdout.

Rendered artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			flags.merge(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default archmap.toml if present)")
	cmd.Flags().StringArrayVarP(&flags.sources, "source", "s", nil, "metadata source directory (repeatable)")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "output directory (empty keeps results in memory)")
	cmd.Flags().BoolVar(&flags.visualize, "visualize", false, "render an image artifact for every diagram")
	cmd.Flags().StringVar(&flags.backend, "renderer", "", "renderer backend: plantuml (default), graphviz")
	cmd.Flags().StringVar(&flags.serverURL, "plantuml-server", "", "PlantUML server base URL")
	cmd.Flags().StringVar(&flags.external, "external-service", "", "display name for calls leaving the system")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render artifacts even when cached")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&flags.outputKey, "output", "o", "", "print one diagram's text to stdout, e.g. services.txt")

	return cmd
}

// runGenerate assembles the generator and executes one run.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config, flags *generateFlags) error {
	if len(cfg.Sources.Roots) == 0 {
		return fmt.Errorf("no source roots: pass --source or set sources.roots in %s", config.DefaultPath)
	}

	gen, err := c.newGenerator(ctx, cfg, cfg.Output.Visualize, flags.noCache)
	if err != nil {
		return err
	}
	opts := generator.Options{
		SourceRoots:     cfg.Sources.Roots,
		TargetDir:       cfg.Output.TargetDir,
		Visualize:       cfg.Output.Visualize,
		ExternalService: cfg.Diagram.ExternalService,
		Refresh:         flags.refresh,
	}

	start := time.Now()
	spinner := newSpinner(ctx, "Generating diagrams...")
	spinner.Start()

	result, err := gen.Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}

	// Keep stdout clean for piping when a single diagram was requested.
	if flags.outputKey != "" {
		spinner.Stop()
		text, ok := result.Diagrams[flags.outputKey]
		if !ok {
			return fmt.Errorf("no diagram %q (available: %s)",
				flags.outputKey, strings.Join(slices.Sorted(maps.Keys(result.Diagrams)), ", "))
		}
		fmt.Print(text)
		return nil
	}

	if result.Stats.Projects == 0 {
		spinner.Stop()
		printWarning("No project metadata found under %s", strings.Join(cfg.Sources.Roots, ", "))
		return nil
	}
	spinner.StopWithSuccess(fmt.Sprintf("Generated %d diagrams", result.Stats.Diagrams))
	printRunStats(result.Stats, time.Since(start))

	if len(result.Files) > 0 {
		printNewline()
		for _, f := range result.Files {
			printFile(f)
		}
	}

	printNewline()
	printNextStep("Browse diagrams", browseHint(cfg.Sources.Roots))
	return nil
}

// browseHint builds the browse invocation matching the current source roots.
func browseHint(roots []string) string {
	var b strings.Builder
	b.WriteString(appName + " browse")
	for _, r := range roots {
		b.WriteString(" --source " + r)
	}
	return b.String()
}
