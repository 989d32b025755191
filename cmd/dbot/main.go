// Package main provides the dbot binary: an interactive dice bot console and
// one-shot roll and simulation commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "dbot",
	Short: "Dice rolling chat bot",
	Long: `dbot rolls dice expressions such as 3*(2d8!+9+1d6!k1), with exploding dice
and keep/drop selection, plus a few UNIX text toys.

Run without a subcommand to start the interactive console.`,
	SilenceUsage: true,
	RunE:         runConsole,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for a deterministic dice source; unset uses crypto/rand")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(simCmd)
}
