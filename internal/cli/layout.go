package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// layoutFlags holds the command-line overrides for a scene's [layout] table.
// Only flags the user actually set are applied.
type layoutFlags struct {
	output       string
	formats      string
	iterations   int
	integrator   string
	gravity      float64
	variable     bool
	avoidOverlap bool
	refresh      bool
	tui          bool
	backend      backendFlags
}

// layoutCommand creates the layout command for computing scene layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [scene.toml]",
		Short: "Compute a boundary-constrained layout for a scene",
		Long: `Compute a boundary-constrained layout for a scene.

The scene file (TOML or JSON) lists regions, nodes and edges. Each node is
kept inside the regions its category names and out of every other region.
Outputs are written next to the scene unless -o is given:

  json  <scene>.layout.json   positions and per-region stats
  svg   <scene>.svg           Graphviz rendering with pinned positions
  dot   <scene>.dot           the same graph as DOT source

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (base name when several formats are given)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output formats: json (default), svg, dot (comma-separated)")
	cmd.Flags().IntVarP(&f.iterations, "iterations", "n", sim.DefaultNumIterations, "number of simulation iterations")
	cmd.Flags().StringVar(&f.integrator, "integrator", sim.DefaultIntegrator, "integrator: euler, rk4")
	cmd.Flags().Float64Var(&f.gravity, "gravity", sim.DefaultGravitationalConstant, "wall strength")
	cmd.Flags().BoolVar(&f.variable, "variable-walls", false, "strengthen walls that keep getting crossed")
	cmd.Flags().BoolVar(&f.avoidOverlap, "avoid-overlap", sim.DefaultAvoidOverlap, "measure repulsion between node extents")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached layouts")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "show interactive progress")
	f.backend.register(cmd)

	return cmd
}

// applyOverrides copies explicitly set flags into the scene's layout options.
func (f layoutFlags) applyOverrides(cmd *cobra.Command, o *sim.Options) {
	flags := cmd.Flags()
	if flags.Changed("iterations") {
		o.NumIterations = f.iterations
	}
	if flags.Changed("integrator") {
		o.Integrator = f.integrator
	}
	if flags.Changed("gravity") {
		o.GravitationalConstant = f.gravity
	}
	if flags.Changed("variable-walls") {
		o.VariableWallStrength = f.variable
	}
	if flags.Changed("avoid-overlap") {
		o.AvoidOverlap = sim.Bool(f.avoidOverlap)
	}
}

// runLayout loads the scene, runs the pipeline and writes its artifacts.
func (c *CLI) runLayout(cmd *cobra.Command, input string, f layoutFlags) error {
	ctx := cmd.Context()

	s, err := pipeline.LoadScene(ctx, input)
	if err != nil {
		return err
	}
	f.applyOverrides(cmd, &s.Layout)

	runner, err := c.newRunner(ctx, f.backend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	stores, err := c.newStores(ctx, f.backend)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer closeStores(context.WithoutCancel(ctx), stores)
	for _, st := range stores {
		runner.Sinks = append(runner.Sinks, st)
	}

	opts := pipeline.Options{
		Formats: parseFormats(f.formats),
		Refresh: f.refresh,
		Logger:  c.Logger,
	}

	var result *pipeline.Result
	if f.tui {
		result, err = runWithTUI(ctx, runner, s, opts)
	} else {
		result, err = c.runWithSpinner(ctx, runner, s, opts)
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, f.output)
	if err != nil {
		return err
	}

	if result.Layout.Cancelled {
		printWarning("Layout cancelled after %d iterations", result.Layout.Iterations)
	} else {
		printSuccess("Layout complete")
	}
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Particles, result.Stats.Regions, result.Layout.Iterations, result.CacheInfo.LayoutHit)
	if !f.tui && len(result.Layout.Regions) > 0 {
		fmt.Println(regionTable(result.Layout.Regions))
	}
	if len(stores) > 0 && !result.Layout.Cancelled {
		printKeyValue("Run", result.Export.RunID)
	}
	printNewline()
	if slices.Contains(opts.Formats, pipeline.FormatJSON) {
		json := artifactPath(input, f.output, pipeline.FormatJSON, opts.Formats)
		printNextStep("Render", appName+" render "+json+" --scene "+input+" -f svg")
	}
	return ctx.Err()
}

func (c *CLI) runWithSpinner(ctx context.Context, runner *pipeline.Runner, s *scene.Scene, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s...", s.Name))
	opts.Progress = func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Laying out %s... %d/%d", s.Name, done, total))
	}
	spinner.Start()

	result, err := runner.Execute(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, err
	}
	spinner.Stop()
	return result, nil
}

// =============================================================================
// Output
// =============================================================================

// writeArtifacts writes each rendered format to its output path and returns
// the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(input, output, format, formats)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath picks the output path of one format. A single format writes
// exactly to output; several formats use output as a base name.
func artifactPath(input, output, format string, formats []string) string {
	if output != "" && len(formats) == 1 {
		return output
	}
	base := output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}
