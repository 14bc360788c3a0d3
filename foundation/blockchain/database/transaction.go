package database

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/holiman/uint256"
)

// Tx represents a transfer on the ledger as a set of signed deltas keyed by
// account. A valid transaction moves value between accounts and never
// creates or destroys it, so its deltas sum to zero. A Tx is treated as a
// value and is never modified once created.
type Tx map[AccountID]int64

// NewTx constructs a transaction from a set of named deltas, validating each
// account name.
func NewTx(deltas map[string]int64) (Tx, error) {
	tx := make(Tx, len(deltas))
	for name, delta := range deltas {
		accountID, err := ToAccountID(name)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", name, err)
		}
		tx[accountID] = delta
	}

	return tx, nil
}

// Sum returns the total of all the deltas in the transaction. The total is
// accumulated in 256 bits so it is exact for any set of deltas. The boolean
// is false when the exact total does not fit in an int64.
func (tx Tx) Sum() (int64, bool) {
	var total uint256.Int
	for _, delta := range tx {
		total.Add(&total, toUint256(delta))
	}

	if total.Sign() >= 0 {
		if !total.IsUint64() || total.Uint64() > math.MaxInt64 {
			return 0, false
		}
		return int64(total.Uint64()), true
	}

	var magnitude uint256.Int
	magnitude.Neg(&total)
	if !magnitude.IsUint64() || magnitude.Uint64() > 1<<63 {
		return 0, false
	}
	return -int64(magnitude.Uint64()-1) - 1, true
}

// Balanced reports whether the deltas sum to exactly zero.
func (tx Tx) Balanced() bool {
	sum, ok := tx.Sum()
	return ok && sum == 0
}

// toUint256 returns the two's complement form of the delta in 256 bits.
func toUint256(delta int64) *uint256.Int {
	if delta >= 0 {
		return uint256.NewInt(uint64(delta))
	}

	// The magnitude of math.MinInt64 only fits unsigned.
	magnitude := uint256.NewInt(uint64(-(delta + 1)) + 1)
	return magnitude.Neg(magnitude)
}

// Accounts returns the accounts referenced by the transaction in sorted order.
func (tx Tx) Accounts() []AccountID {
	return slices.Sorted(maps.Keys(tx))
}

// Clone returns an independent copy of the transaction.
func (tx Tx) Clone() Tx {
	if tx == nil {
		return nil
	}
	return maps.Clone(tx)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	parts := make([]string, 0, len(tx))
	for _, accountID := range tx.Accounts() {
		parts = append(parts, fmt.Sprintf("%s:%d", accountID, tx[accountID]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
