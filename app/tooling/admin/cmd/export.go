package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build the demo chain and save its export to a file.",
	RunE:  exportRun,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addGeneratorFlags(exportCmd)
}

func exportRun(cmd *cobra.Command, args []string) error {
	result, err := runDemo(demoConfig{
		Seed:       seed,
		MaxValue:   maxValue,
		BufferSize: bufferSize,
		BlockSize:  blockSize,
		EvHandler:  evHandler(),
	})
	if err != nil {
		return err
	}

	f, err := storage.NewFile(chainPath)
	if err != nil {
		return err
	}

	if err := f.Save(result.Exported); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d blocks to %s\n", len(result.State.Blocks()), f.Path())

	return nil
}
