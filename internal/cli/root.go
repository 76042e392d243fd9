// Package cli implements the points_checker command-line interface.
package cli

import (
	"fmt"
	"os"

	"points_checker/internal/infrastructure/configloader"
	"points_checker/internal/pkg/utils"

	"github.com/spf13/cobra"
)

// defaultLogLevel keeps the terminal quiet unless asked otherwise.
const defaultLogLevel = "warn"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree. Every call returns fresh state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "points_checker",
		Short: "Check Meteora points for a list of wallets",
		Long: `points_checker asks the Meteora points API about each wallet address,
strictly one address at a time and in the order given.

Example:
  points_checker check addr1 addr2
  points_checker check --file wallets.txt --json
  cat wallets.txt | points_checker check`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config",
		utils.GetEnv("CONFIG_PATH", configloader.DefaultPath), "path to the YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaultLogLevel,
		"log level: debug, info, warn, error")

	root.AddCommand(newCheckCmd(opts))
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
