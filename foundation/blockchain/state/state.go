// Package state is the core API for the ledger and implements all the
// business rules for growing, replacing and extending the chain.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the ledger. A zero
// Genesis value means the default genesis balances are used.
type Config struct {
	Genesis       genesis.Genesis
	DrainStrategy string
	EvHandler     EventHandler
}

// State manages the chain of blocks and the account balances derived from
// it. The ledger assumes a single writer. The mutex only serializes callers
// that share a State, no operation blocks on anything else.
type State struct {
	mu sync.Mutex

	evHandler     EventHandler
	genesis       genesis.Genesis
	transPerBlock int

	mempool *mempool.Mempool
	db      *database.Database
	blocks  []database.Block
}

// New constructs a new ledger holding only the genesis block. Every State
// gets its own copy of the genesis balances.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	gen := cfg.Genesis.Copy()
	if gen.Balances == nil {
		gen = genesis.Default()
	}

	transPerBlock := int(gen.TransPerBlock)
	if transPerBlock < 1 {
		transPerBlock = genesis.DefaultTransPerBlock
	}

	balances, err := gen.AccountBalances()
	if err != nil {
		return nil, err
	}

	genesisBlock, err := database.NewGenesisBlock(balances)
	if err != nil {
		return nil, fmt.Errorf("constructing genesis block: %w", err)
	}

	mp := mempool.New()
	if cfg.DrainStrategy != "" {
		if mp, err = mempool.NewWithStrategy(cfg.DrainStrategy); err != nil {
			return nil, err
		}
	}

	state := State{
		evHandler:     ev,
		genesis:       gen,
		transPerBlock: transPerBlock,

		mempool: mp,
		db:      database.New(balances),
		blocks:  []database.Block{genesisBlock},
	}

	ev("state: New: genesis: blk[0]: hash[%s]", genesisBlock.Hash)

	return &state, nil
}

// latestBlock returns the tip of the chain. The caller must hold the lock.
func (s *State) latestBlock() database.Block {
	return s.blocks[len(s.blocks)-1]
}
