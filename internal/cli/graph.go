package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/pkg/graph"
	"github.com/Ortofta/kaoto/pkg/pipeline"
	"github.com/Ortofta/kaoto/pkg/route"
)

// graphCommand creates the graph command that prints the visualization tree.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		opts       pipeline.Options
		asJSON     bool
		selectPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "graph [route.yaml]",
		Short: "Build the visualization graph of a route",
		Long: `Build the visualization graph of a route definition and print it as a tree.

Every node shows its label, its component for endpoint steps, and its path.
Paths can be passed to --select to print the step they were built from.`,
		Example: `  kaoto graph routes.yaml
  kaoto graph routes.yaml --entity my-route --json
  kaoto graph routes.yaml --select route/from/steps/1/choice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), opts, asJSON, selectPath, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "", "entity id or kind (default: first entity)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "mount the graph at this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the graph as JSON")
	cmd.Flags().StringVar(&selectPath, "select", "", "print the definition at a node path")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, w io.Writer, opts pipeline.Options, asJSON bool, selectPath string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	c.pipelineOptions(&opts)

	prog := newProgress(c.Logger)
	_, def, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	if selectPath != "" {
		return printSelection(w, def, selectPath)
	}

	g, hit, err := runner.BuildWithCacheInfo(ctx, def, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d nodes", g.Len()))

	if asJSON {
		return graph.WriteGraph(g, w)
	}
	fmt.Fprintln(w, graphTree(g))
	printStats(w, g.Len(), groupCount(g), hit)
	printNextStep(w, "Render it", "kaoto render "+opts.Source)
	return nil
}

// printSelection prints the raw step at path inside def.
func printSelection(w io.Writer, def route.Definition, path string) error {
	v, err := route.Select(def, path)
	if err != nil {
		return err
	}
	desc, err := route.Describe(def, path)
	if err != nil {
		return err
	}
	data, err := route.Marshal(route.FromValue(v))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, StyleTitle.Render(desc)+"  "+StylePath.Render(path))
	_, err = w.Write(data)
	return err
}
