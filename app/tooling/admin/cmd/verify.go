package cmd

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/canonical"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate an exported chain from genesis.",
	RunE:  verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	st, err := loadChain(chainPath)
	if err != nil {
		return err
	}

	tip := st.LatestBlock()
	fmt.Fprintf(cmd.OutOrStdout(), "Valid chain of %d blocks, tip blk[%d] %s\n", len(st.Blocks()), tip.Contents.Number, tip.Hash)

	return nil
}

// loadChain reads an exported chain and replays it into a fresh ledger.
func loadChain(path string) (*state.State, error) {
	f, err := storage.NewFile(path)
	if err != nil {
		return nil, err
	}

	exported, err := f.Load()
	if err != nil {
		return nil, err
	}

	st, err := state.New(state.Config{EvHandler: evHandler()})
	if err != nil {
		return nil, err
	}

	if err := st.ImportAndReplace(exported); err != nil {
		if errors.Is(err, canonical.ErrSerialization) {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	return st, nil
}
