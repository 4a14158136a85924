package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// renderCommand creates the render command, which turns a finished layout
// back into artifacts without running the engine again.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		scenePath string
		output    string
		formats   string
		runID     string
		backend   backendFlags
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a stored layout to SVG or DOT",
		Long: `Render a stored layout to SVG or DOT.

The layout is read from a file written by 'layout -f json', or loaded by run
id from the store selected with --store-dir or --mongo-uri. The scene it was
computed from supplies region shapes and edges.`,
		Example: `  boundlayout render office.layout.json --scene office.toml -f svg
  boundlayout render --run 5f0c... --store-dir runs --scene office.toml -f dot -o office.dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 && runID == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "give a layout file or --run")
			}

			s, err := pipeline.LoadScene(ctx, scenePath)
			if err != nil {
				return err
			}

			var e *scene.Export
			if len(args) == 1 {
				e, err = readExportFile(args[0])
			} else {
				e, err = c.loadRun(ctx, backend, runID)
			}
			if err != nil {
				return err
			}

			fs := parseFormats(formats)
			if len(fs) > 1 && output == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "-o is required with several formats")
			}
			input := scenePath
			if len(args) == 1 {
				input = args[0]
			}
			for _, f := range fs {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
				data, err := pipeline.RenderFormat(ctx, s, e, f)
				if err != nil {
					return fmt.Errorf("render %s: %w", f, err)
				}
				path := output
				if len(fs) > 1 {
					path = artifactPath(input, output, f, fs)
				}
				if err := writeOutput(data, path); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				if path != "" {
					printFile(path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenePath, "scene", "", "scene file the layout was computed from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "output formats: svg, dot, json")
	cmd.Flags().StringVar(&runID, "run", "", "load the layout with this run id from a store")
	_ = cmd.MarkFlagRequired("scene")
	backend.register(cmd)

	return cmd
}

func readExportFile(path string) (*scene.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return scene.ReadExport(f)
}

// loadRun looks runID up in each configured store in turn.
func (c *CLI) loadRun(ctx context.Context, b backendFlags, runID string) (*scene.Export, error) {
	stores, err := c.newStores(ctx, b)
	if err != nil {
		return nil, err
	}
	defer closeStores(context.WithoutCancel(ctx), stores)
	if len(stores) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "--run needs --store-dir or --mongo-uri")
	}
	var lastErr error
	for _, st := range stores {
		e, err := st.Load(ctx, runID)
		if err == nil {
			return e, nil
		}
		lastErr = err
		c.Logger.Debug("run not in store", "store", st.Name(), "run_id", runID, "err", err)
	}
	return nil, lastErr
}
