package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/corelib/cmd/corepulse/commands"
	"github.com/teranos/corelib/logger"
)

var rootCmd = &cobra.Command{
	Use:   "corepulse",
	Short: "corepulse - streaming codec, resource monitor, and worker pool infrastructure",
	Long: `corepulse is a small infrastructure library for building workers that
process a resumable JSON/binary codec over a single-threaded resource
monitor and a bounded worker pool.

Available commands:
  run     - run the demo pipeline (monitor -> pool -> codec round trip)
  version - show build/version information`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		level := logger.VerbosityToLevel(verbosity)
		if err := logger.InitializeWithLevel(false, level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v, -vv)")
	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
