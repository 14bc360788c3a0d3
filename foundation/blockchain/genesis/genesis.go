// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// DefaultTransPerBlock is used when a genesis file does not specify the
// maximum number of transactions for a block.
const DefaultTransPerBlock = 5

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time        `json:"date"`
	TransPerBlock uint16           `json:"trans_per_block"` // The maximum number of transactions that can be in a block.
	Balances      map[string]int64 `json:"balances"`
}

// =============================================================================

// Default returns the genesis information used when no genesis file is
// provided. Every call returns a new value.
func Default() Genesis {
	return Genesis{
		TransPerBlock: DefaultTransPerBlock,
		Balances: map[string]int64{
			"Alice": 50,
			"Bob":   50,
		},
	}
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file %s: %w", path, err)
	}

	if genesis.TransPerBlock == 0 {
		genesis.TransPerBlock = DefaultTransPerBlock
	}

	if _, err := genesis.AccountBalances(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// AccountBalances returns a private copy of the genesis balances keyed by
// validated account.
func (g Genesis) AccountBalances() (map[database.AccountID]int64, error) {
	balances := make(map[database.AccountID]int64, len(g.Balances))
	for name, balance := range g.Balances {
		accountID, err := database.ToAccountID(name)
		if err != nil {
			return nil, fmt.Errorf("genesis account %q: %w", name, err)
		}
		balances[accountID] = balance
	}

	return balances, nil
}

// Copy returns a copy of the genesis information that shares no state with
// the original.
func (g Genesis) Copy() Genesis {
	g.Balances = maps.Clone(g.Balances)
	return g
}
