package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schematools/fdcore/pkg/closure"
	"github.com/schematools/fdcore/pkg/fd"
)

type closureOpts struct {
	schemafile string
}

var closureopts = closureOpts{}

func NewClosureCmd() *cobra.Command {

	closureCmd := &cobra.Command{
		Use:   "closure",
		Short: "computes the FD-closure of the given seed attributes",
		Long:  `computes the set of all attributes derivable from the given seed attributes under the schema's functional dependencies`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, seed []string) error {
			schema, err := fd.LoadSchemaFile(closureopts.schemafile)
			if err != nil {
				return err
			}
			result := closure.Closure(schema.Deps(), fd.Set(seed...))
			fmt.Println(strings.Join(result.Sorted(), " "))
			return nil
		},
	}

	closureCmd.PersistentFlags().StringVarP(&closureopts.schemafile, "schema", "s", "schema.yaml", "schema file with the functional dependencies")
	return closureCmd
}
