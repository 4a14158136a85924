package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boundlayout/pkg/core/partition"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
)

// partitionCommand creates the partition command, a debug view of the free
// space decomposition the engine uses to seed particles.
func (c *CLI) partitionCommand() *cobra.Command {
	var (
		output  string
		format  string
		backend backendFlags
	)

	cmd := &cobra.Command{
		Use:   "partition [scene.toml] [region]",
		Short: "Render the free-space partition of a region (debug tool)",
		Long: `Render the free-space partition of a region.

The region's box is split around every region it intersects until the
remaining leaves are free. New particles are seeded in those leaves.`,
		Example: `  # Inspect the partition of "backend"
  boundlayout partition office.toml backend

  # Render the split tree
  boundlayout partition office.toml backend -f svg -o backend.svg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format != "" && format != pipeline.FormatSVG && format != pipeline.FormatDOT {
				return fmt.Errorf("invalid format %q (must be svg or dot)", format)
			}

			s, err := pipeline.LoadScene(ctx, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, backend)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			res, hit, err := runner.Partition(ctx, s, args[1])
			if err != nil {
				return err
			}
			prog.done("Computed partition")

			switch format {
			case pipeline.FormatDOT:
				if err := writeOutput([]byte(res.DOT), output); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			case pipeline.FormatSVG:
				svg, err := partition.RenderDOT(ctx, res.DOT)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				if err := writeOutput(svg, output); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			if format != "" && output == "" {
				return nil
			}

			printSuccess("Partition of %s", res.Region)
			printKeyValue("Box", res.Box.String())
			printKeyValue("Intersecting", listOrDash(res.Intersecting))
			printKeyValue("Leaves", strconv.Itoa(len(res.Leaves)))
			printKeyValue("Depth", strconv.Itoa(res.Depth))
			printKeyValue("Free area", strconv.FormatFloat(res.FreeArea, 'f', 1, 64))
			printKeyValue("Init points", strconv.Itoa(len(res.InitPoints)))
			if hit {
				printDetail("cached")
			}
			if output != "" {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "render the split tree: svg, dot")
	backend.register(cmd)

	return cmd
}

func listOrDash(ids []string) string {
	if len(ids) == 0 {
		return "—"
	}
	return strings.Join(ids, ", ")
}
