package state

import (
	"slices"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis.Copy()
}

// LatestBlock returns the tip of the chain.
func (s *State) LatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latestBlock()
}

// Blocks returns a copy of the chain from genesis to tip.
func (s *State) Blocks() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.blocks)
}

// Balances returns a copy of the current balances.
func (s *State) Balances() map[database.AccountID]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Balances()
}

// Accounts returns the current balances sorted by account. If an account is
// specified, only that account is returned.
func (s *State) Accounts(accountID database.AccountID) []database.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if accountID != "" {
		return []database.Account{{AccountID: accountID, Balance: s.db.Balance(accountID)}}
	}

	return s.db.Accounts()
}

// Pending returns a copy of the transactions waiting to be processed.
func (s *State) Pending() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}
