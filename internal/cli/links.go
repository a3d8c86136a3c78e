package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/pkg/graph"
	"github.com/Ortofta/kaoto/pkg/pipeline"
)

// mappingFlags are the inputs shared by links and browse.
type mappingFlags struct {
	sources  []string
	target   string
	mapping  string
	collapse []string
}

func (f *mappingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.sources, "source", "s", nil, "source document (body or parameter), repeatable")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "target document")
	cmd.Flags().StringVarP(&f.mapping, "mapping", "m", "", "mapping file")
	cmd.Flags().StringArrayVar(&f.collapse, "collapse", nil, "start with this container collapsed, repeatable")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("mapping")
}

func (f *mappingFlags) options(c *CLI) pipeline.MappingOptions {
	return pipeline.MappingOptions{
		DocumentFiles: append(append([]string(nil), f.sources...), f.target),
		MappingFile:   f.mapping,
		Collapsed:     f.collapse,
		View:          c.Config.ViewConfig(),
	}
}

// linksCommand creates the links command that folds mapping correlations.
func (c *CLI) linksCommand() *cobra.Command {
	var (
		flags  mappingFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Compute the connections of a data mapping",
		Long: `Walk a mapping and connect every target field to the source fields it is
computed from.

Ends hidden under a collapsed container are drawn at the nearest visible
ancestor. Correlations with an end that has no visible ancestor are dropped
and reported.`,
		Example: `  kaoto links -s order.yaml -s priority.yaml -t invoice.yaml -m mapping.yaml
  kaoto links -s order.yaml -t invoice.yaml -m mapping.yaml --collapse "sourceBody:Order://order/item" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLinks(cmd.Context(), cmd.OutOrStdout(), flags.options(c), asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print connections with geometry as JSON")

	return cmd
}

func (c *CLI) runLinks(ctx context.Context, w io.Writer, opts pipeline.MappingOptions, asJSON bool) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	prog := newProgress(c.Logger)

	m, err := runner.OpenMapping(ctx, opts)
	if err != nil {
		return err
	}
	res, err := m.Refresh(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Linked %d connections", len(res.Connections)))

	if asJSON {
		return graph.WriteLinks(res, m.View.Canvas(), w)
	}

	printKeyValue(w, "target", m.Target.ID)
	for _, s := range m.Sources {
		printKeyValue(w, string(s.Kind), s.ID)
	}
	fmt.Fprintln(w, connectionTable(res.Connections))
	for _, d := range res.Dropped {
		printWarning(w, "dropped %s -> %s", d.SourcePath, d.TargetPath)
	}
	if res.Duplicates > 0 {
		printDetail(w, "%d duplicate correlations ignored", res.Duplicates)
	}
	return nil
}
