package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/pkg/pipeline"
)

// renderCommand creates the render command that exports route graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [route.yaml]",
		Short: "Render a route graph with Graphviz",
		Long: `Render the visualization graph of a route as a node-link diagram.

Supported formats are dot, svg, png, pdf and json. PNG and PDF need
rsvg-convert on the PATH. Results are cached locally; use --no-cache to
bypass the cache entirely or --refresh to rebuild the graph.

With several formats, --output is a base path and the format is appended.
Use "-o -" to write a single format to stdout.`,
		Example: `  kaoto render routes.yaml
  kaoto render routes.yaml -f dot,svg -o out/route
  kaoto render routes.yaml -f dot -o - | dot -Tpng > route.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateDirection(opts.Direction); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "", "entity id or kind (default: first entity)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "mount the graph at this path")
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "layout direction: TB or LR")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show paths and metadata on nodes")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	c.pipelineOptions(&opts)

	spinner := newSpinner(ctx, stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if output == "-" {
		if len(opts.Formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.Formats))
		}
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Source, output)
	if err != nil {
		return err
	}
	printSuccess(stderr, "Rendered %s", result.Definition.Kind())
	printStats(stderr, result.Stats.NodeCount, groupCount(result.Graph), result.CacheInfo.GraphHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(stderr, p)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order. A single format is written to output as given; otherwise output is
// a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path. Without output the input's
// extension is stripped; a known format extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
