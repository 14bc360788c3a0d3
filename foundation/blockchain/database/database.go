// Package database maintains the in memory account balances of the ledger
// and the block model used to record the transactions applied to them.
package database

import (
	"fmt"
	"maps"
	"math"
	"sort"
)

// Database manages the balance of every account that has transacted on the
// ledger. It is the single source of truth for balances and is only changed
// by applying transactions. A Database is not safe for concurrent use.
type Database struct {
	balances map[AccountID]int64
}

// New constructs a database seeded with a private copy of the specified
// balances. A nil map produces an empty database.
func New(balances map[AccountID]int64) *Database {
	db := Database{
		balances: make(map[AccountID]int64, len(balances)),
	}
	maps.Copy(db.balances, balances)

	return &db
}

// Reset removes every account from the database.
func (db *Database) Reset() {
	db.balances = make(map[AccountID]int64)
}

// Copy returns an independent copy of the database. Changes made to the copy
// are not seen by the original.
func (db *Database) Copy() *Database {
	return New(db.balances)
}

// Balance returns the balance for the specified account. An account that has
// never transacted has a balance of zero.
func (db *Database) Balance(accountID AccountID) int64 {
	return db.balances[accountID]
}

// Balances returns a copy of the current balances.
func (db *Database) Balances() map[AccountID]int64 {
	return maps.Clone(db.balances)
}

// Accounts returns the current balances as a list sorted by account.
func (db *Database) Accounts() []Account {
	accounts := make([]Account, 0, len(db.balances))
	for accountID, balance := range db.balances {
		accounts = append(accounts, Account{AccountID: accountID, Balance: balance})
	}
	sort.Sort(byAccount(accounts))

	return accounts
}

// ApplyTransaction adds every delta of the transaction to the balance of its
// account. No validity check is performed, so a transaction that has not
// passed ValidateTransaction can wrap a balance.
func (db *Database) ApplyTransaction(tx Tx) {
	for accountID, delta := range tx {
		db.balances[accountID] += delta
	}
}

// ValidateTransaction checks the transaction against the current balances.
// The deltas must sum to exactly zero and no referenced account may
// currently hold a negative balance. The check is made against the balances
// before the transaction is applied, not the projected balances. A delta
// that would carry a balance past the int64 range is rejected.
func (db *Database) ValidateTransaction(tx Tx) error {
	sum, ok := tx.Sum()
	switch {
	case !ok:
		return fmt.Errorf("%w: %w: sum outside the int64 range", ErrInvalidTransaction, ErrUnbalanced)
	case sum != 0:
		return fmt.Errorf("%w: %w: sum %d", ErrInvalidTransaction, ErrUnbalanced, sum)
	}

	for _, accountID := range tx.Accounts() {
		balance := db.balances[accountID]
		if balance < 0 {
			return fmt.Errorf("%w: %w: account %s, bal %d", ErrInvalidTransaction, ErrOverdraft, accountID, balance)
		}

		// The balance is not negative here so only a credit can overflow.
		if delta := tx[accountID]; delta > 0 && balance > math.MaxInt64-delta {
			return fmt.Errorf("%w: %w: account %s, bal %d, delta %d", ErrInvalidTransaction, ErrOverflow, accountID, balance, delta)
		}
	}

	return nil
}

// IsValid reports whether the transaction can be applied to the current
// balances.
func (db *Database) IsValid(tx Tx) bool {
	return db.ValidateTransaction(tx) == nil
}
