// Package mempool maintains the buffer of pending transactions waiting to be
// batched into blocks.
package mempool

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Set of drain strategies supported by the mempool.
const (
	StrategyLIFO = "LIFO"
	StrategyFIFO = "FIFO"
)

// Mempool represents an ordered buffer of pending transactions. Transactions
// are drained from the end of the buffer by default. A Mempool is not safe
// for concurrent use.
type Mempool struct {
	pool []database.Tx
	fifo bool
}

// New constructs a new mempool using the default drain strategy.
func New() *Mempool {
	return &Mempool{}
}

// NewWithStrategy constructs a new mempool with the specified drain strategy.
func NewWithStrategy(strategy string) (*Mempool, error) {
	switch strings.ToUpper(strategy) {
	case StrategyLIFO:
		return &Mempool{}, nil
	case StrategyFIFO:
		return &Mempool{fifo: true}, nil
	}

	return nil, fmt.Errorf("strategy %q does not exist", strategy)
}

// FromTransactions constructs a mempool holding the specified transactions
// using the default drain strategy.
func FromTransactions(trans []database.Tx) *Mempool {
	return &Mempool{pool: slices.Clone(trans)}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	return len(mp.pool)
}

// Push adds transactions to the end of the pool.
func (mp *Mempool) Push(trans ...database.Tx) int {
	mp.pool = append(mp.pool, trans...)
	return len(mp.pool)
}

// Pop removes and returns the next transaction to process. The boolean is
// false when the pool is empty.
func (mp *Mempool) Pop() (database.Tx, bool) {
	if len(mp.pool) == 0 {
		return nil, false
	}

	var tx database.Tx
	if mp.fifo {
		tx = mp.pool[0]
		mp.pool[0] = nil
		mp.pool = mp.pool[1:]
	} else {
		last := len(mp.pool) - 1
		tx = mp.pool[last]
		mp.pool[last] = nil
		mp.pool = mp.pool[:last]
	}

	return tx, true
}

// Copy returns the transactions currently in the pool in insertion order.
func (mp *Mempool) Copy() []database.Tx {
	return slices.Clone(mp.pool)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.pool = nil
}
