package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/pkg/route"
)

// newCommand creates the new command that prints default definitions.
func (c *CLI) newCommand() *cobra.Command {
	var (
		catalog string
		asRoute bool
	)

	cmd := &cobra.Command{
		Use:   "new [kind]",
		Short: "Print the default definition of a step",
		Long: `Print a working default definition for a step, ready to paste into a
steps list. Ids are generated.

Components and kamelets become "to" endpoints. With --route, the named
component or kamelet becomes the source of a new empty route.`,
		Example: `  kaoto new choice
  kaoto new timer --catalog component --route
  kaoto new beer-source --catalog kamelet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd.OutOrStdout(), route.CatalogKind(catalog), args[0], asRoute)
		},
	}

	cmd.Flags().StringVarP(&catalog, "catalog", "c", string(route.CatalogProcessor), "catalog: processor, component, kamelet or entity")
	cmd.Flags().BoolVar(&asRoute, "route", false, "print a new route with this source")

	return cmd
}

func runNew(w io.Writer, catalog route.CatalogKind, name string, asRoute bool) error {
	var (
		def route.Definition
		err error
	)
	if asRoute {
		if catalog != route.CatalogComponent && catalog != route.CatalogKamelet {
			return fmt.Errorf("--route needs a component or kamelet source, got catalog %q", catalog)
		}
		def = route.NewRoute(catalog, name)
	} else if def, err = route.DefaultStep(catalog, name); err != nil {
		return err
	}

	data, err := route.Marshal(def)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
