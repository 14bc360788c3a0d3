package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "balances [account]",
	Short: "Print the balances derived from an exported chain.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  balancesRun,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func balancesRun(cmd *cobra.Command, args []string) error {
	st, err := loadChain(chainPath)
	if err != nil {
		return err
	}

	var accountID database.AccountID
	if len(args) == 1 {
		if accountID, err = database.ToAccountID(args[0]); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "LatestBlockHash: %s\n\n", st.LatestBlock().Hash)

	for _, account := range st.Accounts(accountID) {
		fmt.Fprintf(out, "Account: %s  Balance: %d\n", account.AccountID, account.Balance)
	}

	return nil
}
