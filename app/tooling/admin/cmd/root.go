// Package cmd contains the admin commands.
package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	log        *zap.SugaredLogger
	verbose    bool
	chainPath  string
	seed       uint64
	maxValue   int64
	bufferSize int
	blockSize  int
)

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Administer ledger chains",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log ledger events.")
	rootCmd.PersistentFlags().StringVarP(&chainPath, "file", "f", "zblock/chain.json", "Path to the exported chain.")
}

// Execute runs the command selected on the command line.
func Execute(build string, l *zap.SugaredLogger) error {
	log = l
	rootCmd.Version = build

	return rootCmd.Execute()
}

// evHandler returns the ledger event handler for the commands.
func evHandler() state.EventHandler {
	return func(v string, args ...any) {
		if verbose && log != nil {
			log.Infow(fmt.Sprintf(v, args...))
		}
	}
}

// addGeneratorFlags adds the flags used to populate demo buffers.
func addGeneratorFlags(c *cobra.Command) {
	c.Flags().Uint64Var(&seed, "seed", 0, "Seed for the transaction generator.")
	c.Flags().Int64Var(&maxValue, "max-value", 3, "Largest generated transfer.")
	c.Flags().IntVar(&bufferSize, "buffer", 30, "Number of generated transactions.")
	c.Flags().IntVar(&blockSize, "block-size", 5, "Maximum block size used to process the buffer.")
}
