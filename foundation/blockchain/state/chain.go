package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ValidateAndReplace re-derives the balances from the genesis block of the
// candidate chain and validates every block that follows it. The replace is
// atomic. If any block fails, the chain and balances are left exactly as
// they were and the failure is returned.
func (s *State) ValidateAndReplace(chain []database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(chain) == 0 {
		return database.NewValidityError(database.ErrEmptyChain, 0, "candidate chain has no blocks")
	}

	s.evHandler("state: ValidateAndReplace: started: blocks[%d]", len(chain))

	// All the work happens against a fresh database. The current balances
	// are only swapped out once the whole candidate has been accepted.
	work := database.New(nil)

	genesis := chain[0]
	for _, tx := range genesis.Contents.Trans {
		work.ApplyTransaction(tx)
	}

	if err := genesis.ValidateHash(); err != nil {
		s.evHandler("state: ValidateAndReplace: rejected: genesis: %s", err)
		return fmt.Errorf("validating genesis: %w", err)
	}

	switch {
	case genesis.Contents.Number != 0:
		err := database.NewValidityError(database.ErrNumberMismatch, genesis.Contents.Number, "genesis block number must be 0")
		s.evHandler("state: ValidateAndReplace: rejected: genesis: %s", err)
		return fmt.Errorf("validating genesis: %w", err)

	case genesis.Contents.ParentHash != nil:
		err := database.NewValidityError(database.ErrParentHashMismatch, 0, "genesis parent hash %q must be null", *genesis.Contents.ParentHash)
		s.evHandler("state: ValidateAndReplace: rejected: genesis: %s", err)
		return fmt.Errorf("validating genesis: %w", err)
	}

	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateBlock(chain[i-1], work, s.evHandler); err != nil {
			s.evHandler("state: ValidateAndReplace: rejected: %s", err)
			return err
		}
	}

	s.db = work
	s.blocks = slices.Clone(chain)

	s.evHandler("state: ValidateAndReplace: completed: tip: blk[%d]: hash[%s]", s.latestBlock().Contents.Number, s.latestBlock().Hash)

	return nil
}

// ExtendChain validates each candidate block in order against the current
// tip and appends the ones that pass. A failing block is skipped and the
// remaining candidates are still tried. A skipped block leaves no trace in
// the balances, even when some of its leading transactions were valid. The
// number of appended blocks is returned along with the joined errors of the
// skipped blocks.
func (s *State) ExtendChain(blocks []database.Block) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var appended int
	var errs []error

	for _, block := range blocks {
		work := s.db.Copy()

		if err := block.ValidateBlock(s.latestBlock(), work, s.evHandler); err != nil {
			s.evHandler("state: ExtendChain: skipped: %s", err)
			errs = append(errs, err)
			continue
		}

		s.db = work
		s.blocks = append(s.blocks, block)
		appended++

		s.evHandler("state: ExtendChain: appended: blk[%d]: hash[%s]", block.Contents.Number, block.Hash)
	}

	return appended, errors.Join(errs...)
}

// ImportAndReplace decodes an exported chain and replaces the current chain
// with it.
func (s *State) ImportAndReplace(exported string) error {
	chain, err := Import(exported)
	if err != nil {
		return err
	}

	return s.ValidateAndReplace(chain)
}
