package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose = false

var rootCmd = &cobra.Command{
	Use:   "fdcore",
	Short: "fdcore computes attribute closures and provably minimal keys for relational schemas",
	Long:  `The tool reads a schema described by functional dependencies and computes FD-closures and minimum-cardinality attribute sets covering a target, backed by an exact pseudo-Boolean solver`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(NewClosureCmd())
	rootCmd.AddCommand(NewCoreCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
