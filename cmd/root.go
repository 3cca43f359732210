package cmd

import (
	"fmt"
	"os"

	"github.com/hexforge/fieldstate/cmd/bench"
	"github.com/hexforge/fieldstate/cmd/inspect"
	"github.com/hexforge/fieldstate/lib/codec"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "fieldstate",
		Short: "delta-aware binary state serialization toolkit",
		Long: fmt.Sprintf(`fieldstate (v%s)

A delta-aware binary serialization protocol for game state: full snapshots
or incremental diffs of schema-described state objects, with property-name
compression and element-level dirty tracking.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fieldstate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fieldstate v%s (protocol %d.%d)\n", Version, codec.MajorVersion, codec.MinorVersion)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(inspect.InspectCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
