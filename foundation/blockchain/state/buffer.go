package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// SubmitTx adds a transaction to the pending buffer of the ledger. Validity
// against the balances is only decided when the buffer is processed.
func (s *State) SubmitTx(tx database.Tx) (int, error) {
	for accountID := range tx {
		if _, err := database.ToAccountID(string(accountID)); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.mempool.Push(tx.Clone())
	s.evHandler("state: SubmitTx: tx[%s]: pending[%d]", tx, n)

	return n, nil
}

// ProcessMempool drains the pending buffer of the ledger into blocks.
func (s *State) ProcessMempool(maxBlockSize int) (accepted int, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.processBuffer(s.mempool, maxBlockSize)
}

// ProcessBuffer drains the buffer into new blocks on the chain. Each batch
// examines up to maxBlockSize+1 transactions. Valid transactions are applied
// to the balances and recorded in the batch's block, invalid ones are
// dropped and counted as rejected. A batch made only of rejects still
// produces an empty block. A maxBlockSize below one falls back to the
// genesis block size.
func (s *State) ProcessBuffer(buf *mempool.Mempool, maxBlockSize int) (accepted int, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.processBuffer(buf, maxBlockSize)
}

func (s *State) processBuffer(buf *mempool.Mempool, maxBlockSize int) (accepted int, rejected int) {
	if maxBlockSize < 1 {
		maxBlockSize = s.transPerBlock
	}

	for buf.Count() > 0 {
		work := s.db.Copy()
		trans := make([]database.Tx, 0, maxBlockSize+1)

		var batchRejected int
		for examined := 0; examined <= maxBlockSize; examined++ {
			tx, ok := buf.Pop()
			if !ok {
				break
			}

			if err := work.ValidateTransaction(tx); err != nil {
				s.evHandler("state: ProcessBuffer: tx[%s]: ignored: %s", tx, err)
				batchRejected++
				continue
			}

			work.ApplyTransaction(tx)
			trans = append(trans, tx)
		}

		block, err := database.NewBlock(s.latestBlock(), trans)
		if err != nil {
			s.evHandler("state: ProcessBuffer: ERROR: dropping batch of %d: %s", len(trans), err)
			rejected += batchRejected + len(trans)
			continue
		}

		s.db = work
		s.blocks = append(s.blocks, block)
		accepted += len(trans)
		rejected += batchRejected

		s.evHandler("state: ProcessBuffer: blk[%d]: hash[%s]: trans[%d]", block.Contents.Number, block.Hash, len(trans))
	}

	return accepted, rejected
}
